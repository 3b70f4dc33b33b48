package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/oneconcern/revmon/pkg/core/status"
	"github.com/oneconcern/revmon/pkg/errors"
)

var (
	// globals used to patch over calls to os.Exit() during test

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit
)

// exitHints complete the exit message of failures a user may fix from the command line.
// The first matching sentinel wins, so more specific errors come first.
var exitHints = []struct {
	sentinel error
	hint     string
}{
	{status.ErrParse, "archives are read in the text form written by \"revmon export\""},
	{status.ErrInvariantViolation, "\"revmon validate\" reports the first broken invariant of the stored system"},
	{status.ErrNotFound, "list what is stored with \"revmon system list\" or \"revmon graph list\""},
	{status.ErrInvalidArgument, "fields must not carry separators, line breaks or surrounding white space"},
}

// exitOn terminates the command when action failed
func exitOn(action string, err error) {
	if err == nil {
		logFatalln("revmon:", action)
		return
	}
	logFatalf("revmon: %v", exitError(action, err))
}

// exitError wraps the cause of a failed action, with a hint when one applies
func exitError(action string, err error) error {
	for _, h := range exitHints {
		if errors.Is(err, h.sentinel) {
			return fmt.Errorf("%s: %w (%s)", action, err, h.hint)
		}
	}
	return fmt.Errorf("%s: %w", action, err)
}
