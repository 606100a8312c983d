package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/plausibility-eval/scorer/internal/models"
)

// Exit codes for different failure modes
const (
	ExitSuccess  = 0 // Scores written
	ExitRejected = 1 // The submission failed validation or could not be scored
	ExitError    = 2 // Configuration or runtime error
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps an error from the scoring pass to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case models.IsSubmissionError(err):
		return ExitRejected
	default:
		return ExitError
	}
}
