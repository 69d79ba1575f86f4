package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"bookit/internal/app"
)

var (
	cfgFile    string
	home       string
	apiURL     string
	socketURL  string
	logLevel   string
	passphrase string

	appCtx *app.Wire
)

// Execute runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "bookit",
		Short:         "Book local services and chat with providers",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if home != "" {
				cfg.Home = home
			}
			if apiURL != "" {
				cfg.API.BaseURL = apiURL
			}
			if socketURL != "" {
				cfg.Socket.URL = socketURL
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if passphrase != "" {
				cfg.Passphrase = passphrase
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			appCtx, err = app.NewWire(cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./bookit.toml or ~/.bookit/bookit.toml)")
	root.PersistentFlags().StringVar(&home, "home", "", "session cache dir (default ~/.bookit)")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "REST base URL (e.g. http://localhost:5000/api)")
	root.PersistentFlags().StringVar(&socketURL, "socket", "", "chat socket URL (e.g. ws://localhost:5000/ws)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the remembered session")

	root.AddCommand(
		loginCmd(), logoutCmd(), whoamiCmd(),
		servicesCmd(), bookingsCmd(), paymentsCmd(),
		favoritesCmd(), reviewsCmd(), providerCmd(),
		chatCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return root.ExecuteContext(ctx)
}
