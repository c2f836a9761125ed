package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/gosh/core"
	"github.com/josephlewis42/gosh/core/config"
	"github.com/josephlewis42/gosh/core/logger"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// openEventLog returns a session logger for the configured event log and a
// function to close it.
func openEventLog(configuration *config.Configuration) (*logger.SessionLogger, func(), error) {
	if configuration.EventLog == "" {
		return logger.NewNopLogger().NewSession(), func() {}, nil
	}

	fd, err := configuration.OpenEventLog()
	if err != nil {
		return nil, nil, err
	}

	return logger.NewJsonLinesLogRecorder(fd).NewSession(), func() { fd.Close() }, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gosh [command_file]",
	Short: "A small interactive shell",
	Long: `gosh runs commands with pipes, redirection and background jobs.

With no arguments it reads commands interactively, given a file it runs each
line of the file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		events, closeEvents, err := openEventLog(configuration)
		if err != nil {
			return err
		}
		defer closeEvents()

		shell := core.NewShell(configuration, cfgPath, events)

		var reader core.LineReader
		interactive := false
		switch {
		case len(args) == 1:
			fd, err := os.Open(args[0])
			if err != nil {
				return err
			}
			reader = core.NewBatchReader(fd)

		case core.IsTerminal(os.Stdin):
			reader, err = core.NewInteractiveReader(configuration.HistoryPath())
			if err != nil {
				return err
			}
			interactive = true
			shell.Color = configuration.Prompt.Color && core.IsTerminal(os.Stdout)

		default:
			reader = core.NewBatchReader(os.Stdin)
		}
		defer reader.Close()

		return shell.Run(reader, interactive)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory or config.yaml path, defaults are used if empty")
}
