// Command fambalance is the operator CLI over the FamBalance services.
// Session pointers live in the configured store, so with a SQL store a
// login persists across invocations.
package main

import (
	"context"
	"fmt"
	"os"

	"fambalance/internal/config"
	"fambalance/internal/logger"
	"fambalance/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	root := newRootCmd(func(ctx context.Context, verbose bool) (*app, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		return openApp(ctx, cfg, newLogger(cfg, verbose))
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(1)
	}
}

// newLogger writes to stderr so command output stays clean; only warnings
// are shown unless verbose or debug is set
func newLogger(cfg *config.Config, verbose bool) zerolog.Logger {
	if cfg.Debug {
		return logger.New("fambalance", true)
	}
	log := logger.NewWithWriter(os.Stderr, "fambalance", false)
	if !verbose {
		log = log.Level(zerolog.WarnLevel)
	}
	return log
}

// errorText shows domain failures by their user message
func errorText(err error) string {
	if service.KindOf(err) != 0 {
		return service.UserMessage(err)
	}
	return "error: " + err.Error()
}
