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
var UserAgent = "Go-Reminder/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Go Reminder"
	AppCommand     = "go-reminder"
	AppID          = "com.github.tartampluch.go-reminder"
	KeyringService = "com.github.tartampluch.go-reminder"
	EnvPrefix      = "GO_REMINDER"
	ConfigName     = "config"
	ConfigType     = "yaml"
	ConfigDirName  = "go-reminder"
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
	// Used for config and log files.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig    = "config"
	FlagDebug     = "debug"
	FlagLenient   = "lenient"
	FlagDataDir   = "data-dir"
	FlagOutput    = "output"
	FlagUser      = "user"
	FlagForce     = "force"
	FlagAddr      = "addr"
	FlagColor     = "color"
	FlagShortCfg  = "c"
	FlagShortOut  = "o"
	FlagShortUser = "u"

	FlagDescConfig  = "Config file path (default: ./config.yaml or $HOME/.config/go-reminder/config.yaml)"
	FlagDescDebug   = "Enable debug logging"
	FlagDescLenient = "Skip malformed record lines instead of aborting"
	FlagDescDataDir = "Directory holding .rce and .vcf record files"
	FlagDescOutput  = "Write to this file instead of stdout"
	FlagDescUser    = "Username of the remote vCard source"
	FlagDescForce   = "Overwrite an existing file"
	FlagDescAddr    = "HTTP listen address"
	FlagDescColor   = "Colorize output: auto, always or never"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// CLI Commands
// -----------------------------------------------------------------------------

const (
	AppShort = "Upcoming birthdays, anniversaries and holidays from plain-text records"

	CmdNext        = "next"
	CmdNextShort   = "Show the next reminder of each kind (default)"
	CmdExport      = "export"
	CmdExportShort = "Write every reminder as an iCalendar file"
	CmdServe       = "serve"
	CmdServeShort  = "Serve the reminders as an ICS feed, refreshed on schedule"
	CmdConfig      = "config"
	CmdConfigShort = "Manage the configuration file"
	CmdInit        = "init [path]"
	CmdInitShort   = "Write the default configuration file"
	CmdAuth        = "auth"
	CmdAuthShort   = "Manage remote vCard credentials"
	CmdAuthSet     = "set"
	CmdAuthSetLong = "Read the remote vCard password from stdin and store it in the OS keyring"
	CmdVersion     = "version"
	CmdVersionDesc = "Print version information"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultDataDir       = "data"
	DefaultStrict        = true
	DefaultColor         = ColorAuto
	DefaultAddr          = "127.0.0.1:18080"
	DefaultRefresh       = "@daily"
	DefaultLogLevel      = "info"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLeapYear      = 2000 // Leap year anchor for yearless vCard dates like --02-29

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	ExtRecord = ".rce"
	ExtVCF    = ".vcf"
	ExtVCard  = ".vcard"

	// CommentMarker starts a comment that runs to the end of the line.
	CommentMarker = "#"
)

// -----------------------------------------------------------------------------
// Report Output
// -----------------------------------------------------------------------------

const (
	ReportLine      = "next %s: %s\n"
	ReportNone      = "none found"
	ReportToday     = "Today!"
	ReportInDays    = "%s (in %d days)"
	ReportSeparator = ", "
	ReportDescSep   = ": "
	MsgFoundFile    = "found file \"%s\"\n"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Reminder//Engine//EN"
	ICalCalName = "Reminders"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goreminder"

	// iCal/vCard Fields
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropCategories = "CATEGORIES"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY        = "BDAY"
	VCardAnniversary = "ANNIVERSARY"
	VCardFN          = "FN"

	DefaultICalRefresh = 24 * time.Hour

	FormatSummary = "%s: %s"
	FormatUIDName = "%d|%s|%s"
	FormatUID     = "%s@%s"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY / ANNIVERSARY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
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
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteCalendar       = "/"
	RouteHealth         = "/health"
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
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrDataDir         = "could not read data folder"
	ErrReadFile        = "could not read file"
	ErrRecordParse     = "failed to parse record"
	ErrRecordsSkipped  = "malformed records skipped"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrVCardFetch      = "failed to fetch remote vCards"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrNameMissing     = "vCard has no usable name"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrAddrRequired    = "server address is required"
	ErrWriteResp       = "failed to write response body"
	ErrRefreshFailed   = "feed refresh failed"
	ErrRefreshSchedule = "invalid refresh schedule"
	ErrConfigRead      = "failed to read config"
	ErrConfigDecode    = "failed to decode config"
	ErrConfigInvalid   = "invalid config"
	ErrConfigExists    = "config file already exists"
	ErrConfigWrite     = "failed to write config"
	ErrColorMode       = "color must be one of auto, always, never"
	ErrDataDirEmpty    = "data_dir must not be empty"
	ErrCredentials     = "failed to access keyring credentials"
	ErrUserRequired    = "a username is required"
	ErrPasswordRead    = "failed to read password"
	ErrAppFailed       = "application failed unexpectedly"
	ErrOutputFile      = "failed to open output file"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgOK           = "ok"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgLoadStarted    = "Loading records"
	MsgLoadFinished   = "Records loaded"
	MsgFileFound      = "Record file found"
	MsgSkippedLine    = "Skipping malformed record line"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid vCard date"
	MsgFetchStart     = "Initiating vCard download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchOK        = "vCards downloading"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgPassSaved      = "Password stored in keyring"
	MsgExported       = "Calendar exported"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgRefreshDone    = "Feed refreshed"
	MsgRefreshPlanned = "Feed refresh scheduled"
	MsgConfigLoaded   = "Configuration loaded"
	MsgConfigDefault  = "No config file found, using defaults"
	MsgConfigWritten  = "Default config written"
	MsgPasswordPrompt = "Password: "
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
	LogKeyDir       = "dir"
	LogKeyAddr      = "addr"
	LogKeyUser      = "user"
	LogKeyValue     = "value"
	LogKeyToday     = "today"
	LogKeyStrict    = "strict"
	LogKeyStats     = "stats"
	LogKeyFiles     = "files"
	LogKeyLines     = "lines"
	LogKeyCards     = "cards"
	LogKeyEvents    = "events"
	LogKeySkipped   = "skipped"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeySchedule  = "schedule"
	LogKeyDuration  = "duration_ms"
	LogKeyLength    = "content_length"

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
	CompMain    = "main"
	CompConfig  = "config"
	CompEngine  = "engine"
	CompSource  = "source"
	CompFetcher = "fetcher"
	CompKeyring = "keyring"
	CompServer  = "server"
	CompRefresh = "refresh"
)
