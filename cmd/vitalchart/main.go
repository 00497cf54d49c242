package main

import (
	"context"

	"codeberg.org/mutker/vitalchart/internal/cli"
	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/logger"
)

func main() {
	logger.Init(false, false, logger.IsService())

	cmd := cli.NewRootCommand()
	cmd.SilenceErrors = true
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		// Fatal events exit with status 1 once written.
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.FatalWithCode(appErr).Msg("Command failed")
		}
		logger.Fatal().Err(err).Msg("Command failed")
	}
}
