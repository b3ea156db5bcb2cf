package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeNetwork       ErrorType = "NETWORK"
	TypeFeed          ErrorType = "FEED"
	TypeDownload      ErrorType = "DOWNLOAD"
	TypeInstall       ErrorType = "INSTALL"
	TypeUpdate        ErrorType = "UPDATE"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string

	// kind points at the sentinel this error was derived from.
	kind *AppError
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if status, ok := e.Context["status_code"].(int); ok && status != 0 {
			msg += fmt.Sprintf(" - HTTP %d", status)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel e was derived from, so
// errors.Is(ErrFeedFetchFailed.WithError(x), ErrFeedFetchFailed) holds.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t == nil {
		return false
	}
	return e.root() == t.root()
}

func (e *AppError) root() *AppError {
	if e.kind != nil {
		return e.kind
	}
	return e
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
		kind:       e.root(),
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
		kind:       e.root(),
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
		kind:       e.root(),
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrConfigInvalid = NewAppError(TypeConfiguration, "Invalid configuration", nil).
				WithSuggestion("Review ~/.ivids/config.toml or delete it to regenerate defaults")

	ErrBlocklistLoad = NewAppError(TypeConfiguration, "Failed to load blocklist file", nil).
				WithSuggestion("Check that adblock.blocklist_file points to a YAML file with a 'hosts' list")
)

// Network errors
var (
	ErrNetworkUnavailable = NewAppError(TypeNetwork, "No network connection available", nil).
		WithSuggestion("Check your connection and try again")
)

// Feed errors
var (
	ErrFeedFetchFailed = NewAppError(TypeFeed, "Failed to fetch release feed", nil)

	ErrFeedParseFailed = NewAppError(TypeFeed, "Failed to parse release feed", nil)

	ErrNoReleasesFound = NewAppError(TypeFeed, "No releases found", nil)

	ErrArtifactNotFound = NewAppError(TypeFeed, "No installable artifact found", nil)
)

// Download errors
var (
	ErrNoDownloadURL = NewAppError(TypeDownload, "No download URL available", nil).
				WithSuggestion("Run an update check first")

	ErrRedirectMissingLocation = NewAppError(TypeDownload, "Redirect response without Location header", nil)

	ErrTooManyRedirects = NewAppError(TypeDownload, "Too many redirects", nil)

	ErrDownloadFailed = NewAppError(TypeDownload, "Failed to download artifact", nil)
)

// Install errors
var (
	ErrInstallFailed = NewAppError(TypeInstall, "Failed to start installation", nil).
		WithSuggestion("Check update.installer_command in your configuration")
)

// Update errors
var (
	ErrOperationInFlight = NewAppError(TypeUpdate, "Another update operation is already running", nil)

	ErrUpdaterClosed = NewAppError(TypeUpdate, "Updater is shut down", nil)

	ErrUnexpectedFailure = NewAppError(TypeUpdate, "Unexpected failure during update operation", nil).
				WithSuggestion("Run again with --debug and report the log output")
)

// IsNoUpdate reports whether err means "nothing to install" rather than a failure.
func IsNoUpdate(err error) bool {
	return stdErrors.Is(err, ErrNoReleasesFound) || stdErrors.Is(err, ErrArtifactNotFound)
}
