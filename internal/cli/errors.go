package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todotxt/internal/store/textstore"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ParseError reports an index parameter that is not an unsigned integer.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error parsing index: %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// usageError is a misuse of the command line itself.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// maxArgs is cobra.MaximumNArgs reporting a usage error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return &usageError{msg: fmt.Sprintf("usage: todo %s", cmd.Use)}
		}
		return nil
	}
}

// ParseIndex parses an index parameter.
func ParseIndex(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &ParseError{Value: s, Err: err}
	}
	return n, nil
}

// exitCode maps an error from a command to the process exit code.
func exitCode(err error) int {
	var (
		pe *ParseError
		ue *usageError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &pe), errors.As(err, &ue), errors.Is(err, textstore.ErrNotFound):
		return ExitUsage
	default:
		return ExitError
	}
}
