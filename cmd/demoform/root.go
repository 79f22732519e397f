package main

import (
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/wolfman30/onboardai/internal/apiclient"
	appconfig "github.com/wolfman30/onboardai/internal/config"
	"github.com/wolfman30/onboardai/internal/demoapi"
	"github.com/wolfman30/onboardai/internal/mockapi"
	"github.com/wolfman30/onboardai/pkg/logging"
)

type cli struct {
	in  io.Reader
	out io.Writer

	envFile string
	mock    bool
	live    bool
	apiURL  string
	timeout time.Duration

	cfg    *appconfig.Config
	logger *logging.Logger
	api    *demoapi.Service
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	c := &cli{in: in, out: out}

	root := &cobra.Command{
		Use:           "demoform",
		Short:         "Request an OnboardAI demo from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().BoolVar(&c.mock, "mock", false, "use the in-process mock backend (overrides USE_MOCK)")
	root.PersistentFlags().BoolVar(&c.live, "live", false, "use the live HTTP backend (overrides USE_MOCK)")
	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "live backend base URL (overrides API_URL)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "live request timeout (overrides API_TIMEOUT)")

	root.AddCommand(submitCmd(c), catalogCmd(c))
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	if err := appconfig.LoadDotEnv(c.envFile); err != nil {
		return err
	}
	c.cfg = appconfig.Load()
	// Info logs stay off the terminal unless debugging.
	level := c.cfg.LogLevel
	if !c.cfg.Debug && level == "info" {
		level = "warn"
	}
	c.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
	c.cfg.LogSummary(c.logger)

	if c.mock && c.live {
		return errors.New("--mock and --live are mutually exclusive")
	}
	useMock := c.cfg.UseMock
	if cmd.Flags().Changed("mock") {
		useMock = c.mock
	}
	if cmd.Flags().Changed("live") {
		useMock = !c.live
	}
	baseURL := c.cfg.APIBaseURL
	if c.apiURL != "" {
		baseURL = c.apiURL
	}
	timeout := c.cfg.APITimeout
	if c.timeout > 0 {
		timeout = c.timeout
	}

	mockOpts := mockapi.Options{Logger: c.logger}
	if !c.cfg.MockLatency {
		mockOpts.Sleep = mockapi.NoDelay
	}

	c.api = demoapi.NewService(demoapi.Options{
		UseMock: useMock,
		Mock:    mockOpts,
		Live: apiclient.Config{
			BaseURL: baseURL,
			Timeout: timeout,
		},
		Logger: c.logger,
	})
	return nil
}
