/*
Package cli implements the sw360ctl commands.

Commands that touch a realm open the stores named in the service config,
so they work against the same indexes the server uses.
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eclipse-sw360/sw360-search/internal/app"
	"github.com/eclipse-sw360/sw360-search/internal/config"
	logpkg "github.com/eclipse-sw360/sw360-search/internal/logger"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	env        string
	configPath string
	logLevel   string
}

// NewRootCmd creates the sw360ctl root command with all sub-commands.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "sw360ctl",
		Short: "Query and load the SW360 search realms",
		Long: `sw360ctl runs SW360 full-text searches and loads documents into the
users and catalog realms, using the same configuration as the server.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.env, "env", config.GetEnv(), "Config environment (local, dev, prod)")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (overrides --env)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "Log level (debug, info, warn, error)")

	root.AddCommand(
		NewExpandCmd(),
		NewSearchCmd(opts),
		NewIndexCmd(opts),
		NewHealthCmd(opts),
		NewVersionCmd(),
	)
	return root
}

func (o *globalOptions) loadConfig() (config.Config, error) {
	if o.configPath == "" {
		return config.Load(o.env)
	}
	data, err := os.ReadFile(filepath.Clean(o.configPath))
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to read config %s: %w", o.configPath, err)
	}
	return config.Parse(data)
}

// openApp loads the config and opens both realms. The caller closes the App.
func (o *globalOptions) openApp(ctx context.Context) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logpkg.NewLogger(o.env, o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return app.New(ctx, &cfg, logger)
}
