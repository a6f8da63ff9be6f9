package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrUsage marks errors caused by malformed command lines.
var ErrUsage = errors.New("usage")

// ExitCode maps an error returned by the command tree to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

func usageError(err error) error {
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// isUnknownCommand reports whether err is cobra's rejection of an unknown
// subcommand. Cobra builds that error with fmt.Errorf, so only the message
// identifies it.
func isUnknownCommand(err error) bool {
	return err != nil && !errors.Is(err, ErrUsage) && strings.HasPrefix(err.Error(), "unknown command ")
}

// usageArgs wraps positional-argument validation failures in ErrUsage.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
