package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Numerology/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Numerology"
	AppID             = "com.github.tartampluch.go-numerology"
	BinaryName        = "numerology"
	KeyringService    = "com.github.tartampluch.go-numerology"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// Dates
// -----------------------------------------------------------------------------

const (
	// DatePattern is the only accepted textual date shape. No calendar check.
	DatePattern = `^\d{2}\.\d{2}\.\d{4}$`

	// FormatDateText renders day, month and year back into DatePattern.
	FormatDateText = "%02d.%02d.%04d"

	// DateLayout is the time layout equivalent of DatePattern.
	DateLayout = "02.01.2006"

	ErrDateFormat = "invalid date format, expected DD.MM.YYYY"

	// FormatSlotCount expects the wanted and the actual slot count.
	FormatSlotCount = "expected %d slot values, got %d"
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdUseChart       = "chart"
	CmdUseWeek        = "week"
	CmdUseContacts    = "contacts"
	CmdUseServe       = "serve"
	CmdUseGUI         = "gui"
	CmdUseCredentials = "credentials"
	CmdUseCredSet     = "set"
	CmdUseCredDelete  = "delete"
	CmdUseVersion     = "version"

	// AnnotationDaemon marks long-running commands. They log at info level
	// and also to the cache directory log file.
	AnnotationDaemon = "daemon"

	CmdShortRoot        = "Numerology charts and weekly favorability forecasts"
	CmdShortChart       = "Compute the numerology chart of a birth date"
	CmdShortWeek        = "Show the favorability forecast of a week"
	CmdShortContacts    = "Compute charts for every contact with a birthday"
	CmdShortServe       = "Serve the forecast feed and the JSON API"
	CmdShortGUI         = "Open the desktop wizard"
	CmdShortCredentials = "Manage the contact source password"
	CmdShortCredSet     = "Store the password read from stdin"
	CmdShortCredDelete  = "Delete the stored password"
	CmdShortVersion     = "Print version information"

	CmdLongRoot = `numerology derives numerology charts from DD.MM.YYYY dates and builds
weekly favorability forecasts.

Example usage:
  numerology chart --birth 10.01.1982 --ref 02.03.2024
  numerology week --date 20.08.2025 --output json
  numerology contacts
  numerology serve --port 18080`

	FlagConfig = "config"
	FlagDebug  = "debug"
	FlagLang   = "lang"
	FlagOutput = "output"
	FlagBirth  = "birth"
	FlagRef    = "ref"
	FlagDate   = "date"
	FlagPort   = "port"
	FlagUser   = "user"
	FlagShort  = "short"
	FlagJSON   = "json"

	FlagShortOutput = "o"

	FlagDescConfig = "config file (default is .numerology.yaml)"
	FlagDescDebug  = "Enable debug logging"
	FlagDescLang   = "message language (en, fr)"
	FlagDescOutput = "output format: table, json or yaml"
	FlagDescBirth  = "birth date as DD.MM.YYYY"
	FlagDescRef    = "reference date as DD.MM.YYYY (default today)"
	FlagDescDate   = "any date of the week as DD.MM.YYYY (default today)"
	FlagDescPort   = "HTTP port bound on localhost"
	FlagDescUser   = "account name of the contact source"
	FlagDescShort  = "print version string only"
	FlagDescJSON   = "output as JSON"

	MsgVersionOutput = "%s version %s\n"
	MsgVersionField  = "  %-11s %s\n"
	MsgPasswordSaved = "Password stored for %s\n"
	MsgPasswordGone  = "Password deleted for %s\n"
	MsgCLIError      = "Error: %v\n"
	ErrGUIMissing    = "the desktop interface is not available in this build"
)

// -----------------------------------------------------------------------------
// Runtime Settings (viper)
// -----------------------------------------------------------------------------

const (
	ConfigName     = ".numerology"
	ConfigType     = "yaml"
	ConfigPathCwd  = "."
	ConfigPathHome = "$HOME/.config/go-numerology"
	EnvPrefix      = "NUMEROLOGY"

	KeyLanguage      = "language"
	KeyOutput        = "output"
	KeyWorkers       = "workers"
	KeyServerPort    = "server.port"
	KeyServerRefresh = "server.refresh_minutes"
	KeySourceMode    = "source.mode"
	KeySourceLocal   = "source.local_path"
	KeySourceURL     = "source.web_url"
	KeySourceUser    = "source.web_user"

	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// OutputFormats lists the accepted --output values.
var OutputFormats = []string{OutputTable, OutputJSON, OutputYAML}

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	WindowWidth  = 560
	WindowHeight = 640

	// Preference Keys
	PrefLanguage  = "language"
	PrefName      = "last_name"
	PrefBirthDate = "last_birth_date"
	PrefLastRun   = "last_run_version"

	// Grid Layout
	LayoutColumnsDouble = 2
	LayoutColumnsSquare = 3
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyAppTitle = "app_title"

	// Wizard Steps
	TKeyStepWelcome      = "step_welcome"
	TKeyStepRegistration = "step_registration"
	TKeyStepSubscription = "step_subscription"
	TKeyStepPayment      = "step_payment"
	TKeyStepProfile      = "step_profile"
	TKeyStepJourney      = "step_journey"

	TKeyWelcomeText     = "welcome_text"
	TKeyPaymentText     = "payment_text"     // Requires Tier, Price
	TKeyProfileGreeting = "profile_greeting" // Requires Name
	TKeyJourneyLocked   = "journey_locked"

	// Labels
	TKeyLblName          = "lbl_name"
	TKeyLblBirthDate     = "lbl_birth_date"
	TKeyLblReferenceDate = "lbl_reference_date"
	TKeyLblDate          = "lbl_date"
	TKeyLblPlanet        = "lbl_planet"
	TKeyLblActivities    = "lbl_activities"
	TKeyLblContact       = "lbl_contact"
	TKeyLblValue         = "lbl_value"
	TKeyLblSlot          = "lbl_slot"
	TKeyLblCount         = "lbl_count"
	TKeyLblNextBirthday  = "lbl_next_birthday"
	TKeyLblAge           = "lbl_age"
	TKeyPlaceholderDate  = "placeholder_date"

	// Buttons
	TKeyBtnNext    = "btn_next"
	TKeyBtnBack    = "btn_back"
	TKeyBtnRestart = "btn_restart"
	TKeyBtnPay     = "btn_pay"

	// Validation Errors (UI)
	TKeyErrDateFormat   = "err_date_format"
	TKeyErrNameRequired = "err_name_required"
	TKeyErrTierRequired = "err_tier_required"
	TKeyErrIncomplete   = "err_incomplete"

	// Chart Numbers
	TKeyNumWorking      = "num_working"
	TKeyNumSoul         = "num_soul"
	TKeyNumMind         = "num_mind"
	TKeyNumDestiny      = "num_destiny"
	TKeyNumMind2        = "num_mind2"
	TKeyNumWisdom       = "num_wisdom"
	TKeyNumLifePath     = "num_life_path"
	TKeyNumRuling       = "num_ruling"
	TKeyNumProblem      = "num_problem"
	TKeyNumIndividual   = "num_individual"
	TKeyNumProblemCycle = "num_problem_cycle"

	// Square & Lines
	TKeyLblSquare       = "lbl_square"
	TKeyLblStrength     = "lbl_strength"
	TKeyLblCharacter    = "lbl_character"
	TKeyLblStability    = "lbl_stability"
	TKeyLblSpiritual    = "lbl_spiritual"
	TKeyLblFavorability = "lbl_favorability"

	TKeyDaySummary = "day_summary" // Requires Planet, Rating
	TKeyPriceFree  = "price_free"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeNone    = ""
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18080"
	DefaultRefreshMin = 60
	DefaultLanguage   = "en"
	DefaultOutput     = OutputTable
	DefaultWorkers    = 4
	MaxWorkers        = 64
	UIDSalt           = "go-numerology-v1-" // Salt for deterministic UID generation

	// AlarmTrigger fires the reminder of a favorable day at 08:00.
	AlarmTrigger = "PT8H"

	// PriceDivisor converts plan prices from cents.
	PriceDivisor = 100
	FormatPrice  = "%d.%02d €"
)

// -----------------------------------------------------------------------------
// Wizard
// -----------------------------------------------------------------------------

const (
	ErrWizardTransition = "no transition from this step"
	ErrWizardIncomplete = "step is incomplete"
	ErrWizardName       = "a name is required"
	ErrWizardTier       = "a pricing tier is required"
)

// -----------------------------------------------------------------------------
// Validation
// -----------------------------------------------------------------------------

const (
	// TagDate is the validator tag of DD.MM.YYYY fields.
	TagDate = "numdate"

	FormatFieldRequired = "%s is required"
	FormatFieldTooLong  = "%s must be at most %s characters"
	FormatFieldInvalid  = "%s is invalid"

	ErrValidation = "validation failed"
)

// -----------------------------------------------------------------------------
// Locales
// -----------------------------------------------------------------------------

const (
	LocalesDir   = "locales"
	LocalePrefix = "active."
	LocaleSuffix = ".json"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Numerology//Forecast//EN"
	ICalCalName   = "Favorability"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gonumerology"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"

	ActivitySeparator = ", "
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	// Routes
	RouteRoot     = "/"
	RouteCalendar = "/calendar.ics"
	RouteAPI      = "/api"
	RouteChart    = "/chart"
	RouteWeek     = "/week"
	RouteContacts = "/contacts"
	RouteHealth   = "/health"

	// Query Parameters
	QueryBirth = "birth"
	QueryRef   = "ref"
	QueryDate  = "date"
	QueryLang  = "lang"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeVCard           = "text/vcard, text/x-vcard;q=0.9, */*;q=0.5"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty = "configuration error: local path is empty"
	ErrWebURLEmpty    = "configuration error: web URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrNoSource       = "configuration error: no contact source configured"
	ErrOutputFormat   = "configuration error: unsupported output format"
	ErrWorkers        = "configuration error: workers must be between 1 and 64"
	ErrConfigRead     = "failed to read configuration"
	ErrConfigDecode   = "failed to decode configuration"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortNumber     = "server port must be a number"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrFetchNetwork   = "network error during fetch"
	ErrFetchStatus    = "contact server returned unexpected status"
	ErrFetchTooLarge  = "contact stream exceeds the size limit"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrChart          = "chart computation failed"
	ErrRender         = "failed to render output"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrKeyringRead    = "failed to read password from keyring"
	ErrKeyringWrite   = "failed to store password in keyring"
	ErrKeyringDelete  = "failed to delete password from keyring"
	ErrPasswordNone   = "no password stored"
	ErrPasswordEmpty  = "password must not be empty"
	ErrUserRequired   = "account name is required"
	ErrReadStdin      = "failed to read password from stdin"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Forecast initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPStatusOK        = "ok"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackDaySummary = "%s day, favorability %d/10"
	FallbackName       = "Unknown"

	MsgSyncStarted   = "Synchronization started..."
	MsgSyncFinished  = "Synchronization finished"
	MsgSyncFailed    = "Synchronization failed. Check logs."
	MsgWorkerStart   = "Background worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedNoYear = "Skipping birthday without year"
	MsgChartsReady   = "Contact charts computed"
	MsgGenSuccess    = "Forecast calendar generated"
	MsgAppStarting   = "Starting application"
	MsgConfigLoaded  = "Configuration loaded"
	MsgConfigMissing = "No configuration file found, using defaults"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Forecast cache updated"
	MsgRequestBad    = "Rejected API request"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgWizardStep    = "Wizard step changed"
	MsgWizardReject  = "Wizard transition rejected"
	MsgDownload      = "Initiating vCard download"
	MsgDownloading   = "vCards downloading"
	MsgBadStatus     = "Server returned error status"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyTotal     = "total_cards"
	LogKeyCharts    = "charts"
	LogKeySkipped   = "skipped"
	LogKeyWorkers   = "workers"
	LogKeySizeBytes = "size_bytes"
	LogKeyLength    = "content_length"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyDuration  = "duration_ms"
	LogKeyWeek      = "week_start"
	LogKeyFavorable = "favorable_days"
	LogKeyState     = "state"
	LogKeyPath      = "path"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompMain    = "main"
	CompCLI     = "cli"
	CompConfig  = "config"
	CompKeyring = "keyring"
	CompI18n    = "i18n"
)
