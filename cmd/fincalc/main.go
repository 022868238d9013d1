package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/internal/logging"
	"github.com/iwvelando/fincalc/internal/report"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/output"
	"github.com/iwvelando/fincalc/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// setFlags collects repeated -set key=value flags.
type setFlags map[string]string

func (s setFlags) String() string {
	pairs := make([]string, 0, len(s))
	for key, value := range s {
		pairs = append(pairs, key+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (s setFlags) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	s[key] = strings.TrimSpace(val)
	return nil
}

type options struct {
	configPath   string
	slug         string
	values       setFlags
	outputFormat string
	logLevel     string
	outputPath   string
}

func parseFlags(args []string) (options, error) {
	opts := options{values: setFlags{}}
	fset := flag.NewFlagSet("fincalc", flag.ContinueOnError)
	fset.StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	fset.StringVar(&opts.slug, "calculator", "", "calculator to evaluate, e.g. emi, sip, tax")
	fset.Var(opts.values, "set", "field value as key=value; may be repeated")
	fset.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, json, pdf")
	fset.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	fset.StringVar(&opts.outputPath, "output", "", "write the report to this file instead of stdout")
	if err := fset.Parse(args); err != nil {
		return options{}, err
	}
	if opts.slug == "" {
		return options{}, errors.New("-calculator is required")
	}
	return opts, nil
}

// loadConfiguration reads the config file, falling back to defaults when it
// does not exist.
func loadConfiguration(path string) (*config.Configuration, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return config.LoadConfiguration(path)
}

// run evaluates one calculator and writes the report to w.
func run(logger *zap.Logger, conf *config.Configuration, opts options, w io.Writer) error {
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	formatter, err := conf.Formatter()
	if err != nil {
		return err
	}

	registry, warnings := conf.ApplyDefaults(calculator.Default())
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning, zap.String("op", "main"))
	}

	calc, err := registry.Get(opts.slug)
	if err != nil {
		return err
	}

	page := calculator.NewPageIn(calc, formatter)
	result, warnings := page.ApplyText(opts.values)
	for _, warning := range warnings {
		logger.Warn("Input warning: "+warning,
			zap.String("op", "main"),
			zap.String("calculator", calc.Slug()),
		)
	}
	logger.Debug("calculation computed",
		zap.String("op", "main"),
		zap.String("calculator", calc.Slug()),
		zap.String("locale", formatter.Tag().String()),
		zap.Int("cards", len(result.Cards)),
		zap.Int("tables", len(result.Tables)),
	)

	if outputFormat == constants.OutputFormatPDF {
		return report.Generate(w, page)
	}
	return output.Write(w, outputFormat, calc.Title(), result, formatter)
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid arguments\", \"error\": %q}\n", err.Error())
		os.Exit(2)
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	conf, err := loadConfiguration(opts.configPath)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": %q}\n", opts.configPath, err.Error())
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, opts.logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning, zap.String("op", "main"))
	}

	var w io.Writer = os.Stdout
	if opts.outputPath != "" {
		file, err := os.Create(opts.outputPath)
		if err != nil {
			logger.Fatal("failed to create output file",
				zap.String("op", "main"),
				zap.String("path", opts.outputPath),
				zap.Error(err),
			)
		}
		defer func() {
			_ = file.Close()
		}()
		w = file
	}

	if err := run(logger, conf, opts, w); err != nil {
		logger.Fatal("failed to evaluate calculator",
			zap.String("op", "main"),
			zap.String("calculator", opts.slug),
			zap.Error(err),
		)
	}
}
