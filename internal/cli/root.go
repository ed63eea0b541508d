package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/pwnwatch/internal/app"
	"github.com/samvad-hq/pwnwatch/internal/config"
	"github.com/samvad-hq/pwnwatch/internal/logger"
	"github.com/samvad-hq/pwnwatch/pkg/hibp"
)

// Execute runs the pwnwatch command line.
func Execute() error {
	return newRootCmd(config.Load).Execute()
}

type rootOptions struct {
	baseURL   string
	apiKey    string
	userAgent string
	timeout   time.Duration
	debug     bool

	loadConfig func() (*config.Config, error)
}

func newRootCmd(load func() (*config.Config, error)) *cobra.Command {
	opts := &rootOptions{loadConfig: load}

	cmd := &cobra.Command{
		Use:          "pwnwatch",
		Short:        "Query Have I Been Pwned and monitor accounts for new breaches",
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.baseURL, "base-url", "", "API base URL (overrides HIBP_BASE_URL)")
	pf.StringVar(&opts.apiKey, "api-key", "", "hibp-api-key header value (overrides HIBP_API_KEY)")
	pf.StringVar(&opts.userAgent, "user-agent", "", "User-Agent header (overrides HIBP_USER_AGENT)")
	pf.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout, e.g. 10s")
	pf.BoolVar(&opts.debug, "debug", false, "log request traces to stderr")

	cmd.AddCommand(
		accountCmd(opts),
		breachesCmd(opts),
		breachCmd(opts),
		dataClassesCmd(opts),
		pastesCmd(opts),
		scanCmd(opts),
	)
	return cmd
}

// config loads configuration and applies flag overrides.
func (o *rootOptions) config(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.HIBPBaseURL = o.baseURL
	}
	if flags.Changed("api-key") {
		cfg.HIBPAPIKey = o.apiKey
	}
	if flags.Changed("user-agent") {
		cfg.HIBPUserAgent = o.userAgent
	}
	if flags.Changed("timeout") {
		cfg.HIBPTimeout = o.timeout
	}
	if o.debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// setup returns the config, a logger and a func that flushes it.
func (o *rootOptions) setup(cmd *cobra.Command) (*config.Config, logger.Logger, func(), error) {
	cfg, err := o.config(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, func() { _ = logger.Close() }, nil
}

func (o *rootOptions) client(cmd *cobra.Command) (*hibp.Client, func(), error) {
	cfg, log, done, err := o.setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	client, err := app.NewHIBPClient(cfg, log)
	if err != nil {
		done()
		return nil, nil, err
	}
	return client, done, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
