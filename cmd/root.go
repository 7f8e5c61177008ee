// Package cmd holds the pagekit command tree.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomicstack/pagekit/internal/app"
	"github.com/atomicstack/pagekit/internal/config"
	"github.com/atomicstack/pagekit/internal/logging"
)

// ErrConfig marks errors caused by flags, environment or the config file.
var ErrConfig = errors.New("configuration error")

// NewRootCmd builds the command tree. environ seeds the flag defaults.
func NewRootCmd(environ []string) *cobra.Command {
	root := &cobra.Command{
		Use:           "pagekit",
		Short:         "Accessible mobile menu and custom selects, hosted in the terminal",
		Long:          "pagekit mounts the navigation menu and custom select controllers on a page and runs it as a terminal UI.\nTab moves focus, Enter/Space activates, arrows move inside the menu and open selects, letters type ahead.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	b := config.Bind(root.PersistentFlags(), environ)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	})
	root.RunE = func(_ *cobra.Command, _ []string) error {
		cfg, err := setup(b)
		if err != nil {
			return err
		}
		traceStartup(cfg)
		return app.Run(cfg.App)
	}
	root.AddCommand(newCountriesCmd(), newRenderCmd(b))
	return root
}

// Execute runs the command tree against the process arguments.
func Execute() error {
	return NewRootCmd(os.Environ()).Execute()
}

// setup resolves the configuration and points logging at it.
func setup(b *config.Binding) (config.Config, error) {
	cfg, err := b.Config(os.Args[1:])
	if err != nil {
		return config.Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	return cfg, nil
}
