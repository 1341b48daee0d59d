package cli

import "fmt"

// exitError carries a distinct process exit code up to main. The validation
// exit codes (1 schema, 2 certificate, 3 policy) are a CI contract, so a
// plain non-nil error is not enough.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string { return e.message }

// ExitCode returns the code main should exit with.
func (e *exitError) ExitCode() int { return e.code }

func exitWithCode(code int, format string, args ...any) error {
	return &exitError{code: code, message: fmt.Sprintf(format, args...)}
}
