package root

import (
	"errors"
	"log/slog"

	"github.com/crucial707/inventory-tracker/internal/config"
	"github.com/crucial707/inventory-tracker/internal/logging"
	"github.com/crucial707/inventory-tracker/internal/session"
	"github.com/spf13/cobra"
)

var configPath string

var (
	settings = config.Default()
	logger   = slog.New(slog.DiscardHandler)
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:          "inventory",
	Short:        "Inventory tracker",
	Long:         "Track stocked items, import and export them as CSV or JSON, and report on who did what.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		l, err := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
		if err != nil {
			return err
		}
		Configure(cfg, l)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with file paths and log settings")
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}

// Configure sets the settings and logger used by OpenSession.
func Configure(cfg config.Config, l *slog.Logger) {
	settings = cfg
	logger = l
}

// Settings returns the resolved configuration.
func Settings() config.Config {
	return settings
}

// Session loads the inventory, ledger and directory named in Settings.
// Files that fail to load are reported in LoadErrors.
func Session() *session.Session {
	return session.Open(settings, logger)
}

// OpenSession is Session for commands that should stop when a file failed
// to load.
func OpenSession() (*session.Session, error) {
	sess := Session()
	if len(sess.LoadErrors) > 0 {
		return nil, errors.Join(sess.LoadErrors...)
	}
	return sess, nil
}
