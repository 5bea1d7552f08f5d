package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"auction-client/internal/api"
	"auction-client/internal/config"
	"auction-client/internal/navigation"
	"auction-client/internal/store"
	"auction-client/utils"

	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		utils.Error("auction-client: command failed", map[string]any{"error": err.Error()})
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run parses global flags, builds the client stack and dispatches one command
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("auction-client", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.SetInterspersed(false)
	baseURL := flags.String("base-url", "", "backend origin (overrides AUCTION_BASE_URL)")
	logLevel := flags.String("log-level", "", "log level (overrides AUCTION_LOG_LEVEL)")
	envFile := flags.String("env-file", ".env", "optional dotenv file")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: auction-client [flags] <command> [args]\n\ncommands:\n%s\nflags:\n", commandUsage())
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	utils.SetOutput(stderr)
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	a, err := newApp(cfg, stdout)
	if err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return errUsage
	}
	return a.dispatch(ctx, flags.Arg(0), flags.Args()[1:])
}

// app is the client stack one CLI invocation drives
type app struct {
	client  *api.Client
	history *navigation.History
	users   *store.UserStore
	items   *store.ItemsStore
	router  *navigation.Router
	out     io.Writer
}

func newApp(cfg config.Config, out io.Writer) (*app, error) {
	client, err := api.NewClient(api.Config{
		BaseURL:           cfg.BaseURL,
		HTTPClient:        &http.Client{Timeout: cfg.RequestTimeout},
		CSRFCookieName:    cfg.CSRFCookieName,
		CSRFHeaderName:    cfg.CSRFHeaderName,
		SessionCookieName: cfg.SessionCookieName,
	})
	if err != nil {
		return nil, err
	}
	client.SetSession(cfg.SessionID, cfg.CSRFToken)

	history, err := navigation.NewHistory(client.BaseURL())
	if err != nil {
		return nil, err
	}

	users := store.NewUserStore(client, history)
	return &app{
		client:  client,
		history: history,
		users:   users,
		items:   store.NewItemsStore(client),
		router:  navigation.NewRouter(users, history),
		out:     out,
	}, nil
}
