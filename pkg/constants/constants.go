// Package constants provides shared constants for the fincalc application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 paisa)
	CurrencyTolerance = 0.01

	// RelativeTolerance bounds floating point drift in iterative schedules
	RelativeTolerance = 1e-6
)

// Compounding frequencies per year
const (
	// CompoundYearly compounds once a year
	CompoundYearly = 1

	// CompoundQuarterly compounds four times a year
	CompoundQuarterly = 4

	// CompoundMonthly compounds every month
	CompoundMonthly = 12
)

// Indian income tax constants
const (
	// CessPercent is the health and education cess applied on computed tax
	CessPercent = 4.0

	// Section80CCap is the combined cap for EPF, PPF, ELSS and life insurance
	Section80CCap = 150000.0

	// Section80CCD1BCap is the cap for additional NPS contributions
	Section80CCD1BCap = 50000.0

	// Section80DCap is the cap for medical insurance premiums
	Section80DCap = 25000.0
)

// Salary constants
const (
	// ProvidentFundPercent is the employee PF contribution on basic salary
	ProvidentFundPercent = 12.0

	// ProvidentFundMonthlyCap is the monthly ceiling on the PF contribution
	ProvidentFundMonthlyCap = 1800.0
)

// Presentation constants
const (
	// DefaultLanguage is the locale used for number formatting
	DefaultLanguage = "en-IN"

	// DefaultCurrency is the ISO 4217 code used for currency formatting
	DefaultCurrency = "INR"

	// Crore is ten million, used for compact Indian formatting
	Crore = 10000000.0

	// Lakh is one hundred thousand, used for compact Indian formatting
	Lakh = 100000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatPDF is the PDF report output format
	OutputFormatPDF = "pdf"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "fincalc.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. FINCALC_LOGGING_LEVEL
	EnvPrefix = "FINCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxUploadSizeBytes int64 = 64 * 1024

	// DefaultCacheCapacity is the default number of memoized results
	DefaultCacheCapacity = 512

	// DefaultCacheTTLSeconds is the default lifetime of a memoized result
	DefaultCacheTTLSeconds = 300

	// DefaultRequestsPerMinute is the default per-client request budget
	DefaultRequestsPerMinute = 120
)

// Cache backends
const (
	// CacheBackendNone disables response caching
	CacheBackendNone = "none"

	// CacheBackendMemory keeps results in process memory
	CacheBackendMemory = "memory"

	// CacheBackendRedis keeps results in redis
	CacheBackendRedis = "redis"
)
