// Package cli implements devotionalctl, a command-line client of the
// devotional API.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/devotional-service/internal/adapters/clients"
	"github.com/jsamuelsen/devotional-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/devotional-service/internal/platform/config"
	"github.com/jsamuelsen/devotional-service/internal/platform/logging"
)

// Execute runs devotionalctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// options are the persistent flags shared by every command.
type options struct {
	baseURL  string
	timeout  time.Duration
	output   string
	logLevel string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "devotionalctl",
		Short:        "Query the devotional API and classify devotional titles",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return validateOutput(opts.output)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", "", "API base URL (default: DEVOTIONAL_API_URL or "+config.DefaultClientBaseURL+")")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (default: client.timeout from config)")
	flags.StringVarP(&opts.output, "output", "o", formatTable, "output format: table, json or yaml")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: trace, debug, info, warn or error")

	cmd.AddCommand(
		itemsCmd(opts),
		collectionCmd(opts),
		collectionsCmd(opts),
		deitiesCmd(opts),
		healthCmd(opts),
		classifyCmd(opts),
	)

	return cmd
}

// logger writes CLI diagnostics to stderr so stdout stays machine-readable.
func (o *options) logger(w io.Writer) *slog.Logger {
	return logging.NewWithWriter(&logging.Config{
		Level:  o.logLevel,
		Format: "pretty",
	}, w)
}

// client builds a DevotionalClient from the layered configuration, with the
// command-line flags applied on top.
func (o *options) client(cmd *cobra.Command) (*acl.DevotionalClient, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settings := cfg.Client
	if o.baseURL != "" {
		settings.BaseURL = o.baseURL
	}

	if o.timeout > 0 {
		settings.Timeout = o.timeout
	}

	logger := o.logger(cmd.ErrOrStderr())

	c, err := clients.New(acl.ServiceName, settings, logger)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return acl.NewDevotionalClient(acl.DevotionalClientConfig{Client: c, Logger: logger}), nil
}
