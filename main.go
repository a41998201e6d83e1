package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-hotkey/cmd"
	"github.com/mattsolo1/grove-hotkey/cmd/config"
	"github.com/mattsolo1/grove-hotkey/pkg/logging"
	"github.com/mattsolo1/grove-hotkey/pkg/service"
)

var (
	svc       *service.Service
	logCloser io.Closer
)

// Commands that never touch the vault or session.
var skipService = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "hk",
		Short: "Date-templated note hotkeys",
		Long: `hk turns date-templated paths such as 'journal/{YYYY-MM-DD}.md' into
numbered commands that focus today's note if it is open, or open it.`,
		SilenceUsage: true,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		config.InitConfig()

		logger, closer, err := logging.New(config.LoggingConfig(), os.Stderr)
		if err != nil {
			logger = logrus.New()
			logger.SetOutput(os.Stderr)
			logger.SetLevel(logrus.WarnLevel)
			logger.WithError(err).Warn("Falling back to default logging")
		} else {
			logCloser = closer
		}

		if skipService[c.Name()] {
			return nil
		}

		svc, err = config.InitService(logger)
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		return nil
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewOpenCmd(&svc))
	rootCmd.AddCommand(cmd.NewListCmd(&svc))
	rootCmd.AddCommand(cmd.NewPreviewCmd(&svc))
	rootCmd.AddCommand(cmd.NewTemplatesCmd(&svc))
	rootCmd.AddCommand(cmd.NewPaneCmd(&svc))
	rootCmd.AddCommand(cmd.NewViewsCmd(&svc))
	rootCmd.AddCommand(cmd.NewEditCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	err := rootCmd.Execute()

	if svc != nil {
		svc.Close()
	}
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
