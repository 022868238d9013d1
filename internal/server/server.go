package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/fincalc/internal/cache"
	"github.com/iwvelando/fincalc/internal/calculator"
	"github.com/iwvelando/fincalc/internal/report"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/input"
	"github.com/iwvelando/fincalc/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options holds the dependencies of the HTTP handler. Zero values fall back
// to defaults: every calculator, no cache, no rate limit, en-IN rupees.
type Options struct {
	MaxUploadSize     int64
	Version           string
	Registry          *calculator.Registry
	Cache             cache.Cache
	RequestsPerMinute int
	Formatter         *format.Formatter
}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	registry      *calculator.Registry
	cache         cache.Cache
	formatter     *format.Formatter
	limiter       *RateLimiter
	pages         *pages
}

// Server serves the calculator pages and the JSON API.
type Server struct {
	router  http.Handler
	limiter *RateLimiter
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops background work started by NewHandler.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// NewHandler constructs the HTTP handler that serves the web UI and calculator API.
func NewHandler(logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		registry:      opts.Registry,
		cache:         opts.Cache,
		formatter:     opts.Formatter,
		pages:         mustLoadPages(),
	}
	if h.formatter == nil {
		h.formatter = format.Default()
	}
	if h.registry == nil {
		h.registry = calculator.Default()
	}
	if h.cache == nil {
		h.cache = cache.Nop{}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	if opts.RequestsPerMinute > 0 {
		h.limiter = NewRateLimiter(opts.RequestsPerMinute, time.Minute)
		r.Use(h.rateLimit)
	}

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.respondErrorWithOp(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "server.methodNotAllowed")
	})

	r.Get("/", h.handleIndex)
	r.Get("/contact", h.handleContact)
	r.Get("/calculator/{slug}", h.handleCalculatorPage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/calculators", h.handleList)
		r.Get("/calculators/{slug}", h.handleDefinition)
		r.Post("/calculators/{slug}", h.handleCompute)
		r.Get("/calculators/{slug}/export.{ext}", h.handleExport)
	})

	return &Server{router: r, limiter: h.limiter}
}

type calculatorSummary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Route       string `json:"route"`
}

type calculatorDefinition struct {
	calculatorSummary
	Fields   []input.Field     `json:"fields"`
	Defaults calculator.Values `json:"defaults"`
}

type computeRequest struct {
	Values map[string]float64 `json:"values"`
}

type formattedCard struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type computeResponse struct {
	Calculator string            `json:"calculator"`
	Values     calculator.Values `json:"values"`
	Fields     []input.Field     `json:"fields"`
	Result     calculator.Result `json:"result"`
	Cards      []formattedCard   `json:"cards"`
	Warnings   []string          `json:"warnings,omitempty"`
}

func summarize(c calculator.Calculator) calculatorSummary {
	return calculatorSummary{
		Slug:        c.Slug(),
		Title:       c.Title(),
		Description: c.Description(),
		Route:       "/calculator/" + c.Slug(),
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleList(w http.ResponseWriter, r *http.Request) {
	calcs := h.registry.List()
	summaries := make([]calculatorSummary, 0, len(calcs))
	for _, c := range calcs {
		summaries = append(summaries, summarize(c))
	}
	h.writeJSON(w, http.StatusOK, summaries)
}

func (h *handler) handleDefinition(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDefinition"
	calc, ok := h.lookup(w, r, op)
	if !ok {
		return
	}

	defaults := calculator.Defaults(calc)
	if r.URL.Query().Get("format") == "yaml" {
		body, err := yaml.Marshal(map[string]map[string]calculator.Values{
			"calculators": {calc.Slug(): defaults},
		})
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode defaults: %v", err), op)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", calc.Slug()+".yaml"))
		_, _ = w.Write(body)
		return
	}

	h.writeJSON(w, http.StatusOK, calculatorDefinition{
		calculatorSummary: summarize(calc),
		Fields:            calc.Fields(),
		Defaults:          defaults,
	})
}

func (h *handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompute"
	calc, ok := h.lookup(w, r, op)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	// Formatted cards depend on the locale, so it is part of the key.
	variant := constants.OutputFormatJSON + "@" + h.formatter.Tag().String() + "/" + h.formatter.CurrencyCode()
	key := cache.Key(calc.Slug(), variant, req.Values)
	if body, hit, err := h.cache.Get(r.Context(), key); err != nil {
		h.logger.Warn("cache lookup failed", zap.String("op", op), zap.Error(err))
	} else if hit {
		w.Header().Set("X-Cache", "hit")
		h.writeRaw(w, http.StatusOK, "application/json", body)
		return
	}

	start := time.Now()
	page := calculator.NewPageIn(calc, h.formatter)
	result, warnings := page.Apply(req.Values)
	response := computeResponse{
		Calculator: calc.Slug(),
		Values:     page.Values(),
		Fields:     page.Fields(),
		Result:     result,
		Cards:      formatCards(result.Cards, h.formatter),
		Warnings:   warnings,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(response); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode result: %v", err), op)
		return
	}
	if err := h.cache.Set(r.Context(), key, buf.Bytes()); err != nil {
		h.logger.Warn("cache store failed", zap.String("op", op), zap.Error(err))
	}

	h.logger.Debug("calculation computed",
		zap.String("op", op),
		zap.String("calculator", calc.Slug()),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", time.Since(start)),
	)
	w.Header().Set("X-Cache", "miss")
	h.writeRaw(w, http.StatusOK, "application/json", buf.Bytes())
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	calc, ok := h.lookup(w, r, op)
	if !ok {
		return
	}

	ext := chi.URLParam(r, "ext")
	page := calculator.NewPageIn(calc, h.formatter)
	result, warnings := page.ApplyText(queryValues(r))
	if len(warnings) > 0 {
		w.Header().Set("X-Warnings", strings.Join(warnings, "; "))
	}

	var (
		buf         bytes.Buffer
		err         error
		contentType string
	)
	switch ext {
	case constants.OutputFormatCSV:
		contentType = "text/csv"
		err = output.CsvFormat(&buf, result, h.formatter)
	case constants.OutputFormatJSON:
		contentType = "application/json"
		err = output.JSONFormat(&buf, result)
	case constants.OutputFormatPDF:
		contentType = "application/pdf"
		err = report.Generate(&buf, page)
	default:
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("unsupported export format %q", ext), op)
		return
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to export: %v", err), op)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", calc.Slug()+"."+ext))
	h.writeRaw(w, http.StatusOK, contentType, buf.Bytes())
}

func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("no route for %s", r.URL.Path), "server.handleNotFound")
		return
	}
	h.renderPage(w, http.StatusNotFound, "notfound", h.baseView("Not Found").withPath(r.URL.Path))
}

// lookup resolves the slug route parameter, responding 404 when it is unknown.
func (h *handler) lookup(w http.ResponseWriter, r *http.Request, op string) (calculator.Calculator, bool) {
	calc, err := h.registry.Get(chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, calculator.ErrUnknownCalculator) {
			h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return nil, false
	}
	return calc, true
}

func queryValues(r *http.Request) map[string]string {
	query := r.URL.Query()
	values := make(map[string]string, len(query))
	for key, v := range query {
		if len(v) > 0 {
			values[key] = v[0]
		}
	}
	return values
}

func formatCards(cards []calculator.Card, f *format.Formatter) []formattedCard {
	formatted := make([]formattedCard, 0, len(cards))
	for _, c := range cards {
		formatted = append(formatted, formattedCard{
			Key:         c.Key,
			Title:       c.Title,
			Value:       c.FormattedIn(f),
			Description: c.Description,
		})
	}
	return formatted
}

func (h *handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("request served",
			zap.String("op", "server.requestLogger"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestID", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeRaw(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
