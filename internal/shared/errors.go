package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authorization flow errors
	ErrBrowserLaunch  = fmt.Errorf("failed to open browser")
	ErrCSRFMismatch   = fmt.Errorf("state does not match csrf token")
	ErrNoPendingLogin = fmt.Errorf("no pending login session")
	ErrExchangeFailed = fmt.Errorf("token exchange failed")
	ErrRefreshFailed  = fmt.Errorf("token refresh failed")
	ErrTimeout        = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
