package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/interviewdesk/internal/logger"
	"github.com/julianstephens/interviewdesk/internal/remote"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", Describe(err))
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Describe turns a backend error into the text shown to the user. Transport
// failures get a generic retry hint; validation detail is passed through as
// the server sent it.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var ve *remote.ValidationError
	if stderrors.As(err, &ve) {
		return "Rejected by server: " + ve.Error()
	}
	if remote.IsNotFound(err) {
		return "That interview no longer exists on the server."
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return "The server took too long to answer. Press r to retry."
	}
	if stderrors.Is(err, remote.ErrUnavailable) {
		return "Could not reach the interview server. Press r to retry."
	}
	return err.Error()
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
