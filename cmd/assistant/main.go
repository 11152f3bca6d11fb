package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/addressbook/internal/config"
	"github.com/mmynk/addressbook/internal/metrics"
	"github.com/mmynk/addressbook/internal/middleware"
	"github.com/mmynk/addressbook/internal/service"
	"github.com/mmynk/addressbook/internal/shell"
	"github.com/mmynk/addressbook/internal/storage"
	"github.com/mmynk/addressbook/internal/storage/sqlite"
	"github.com/mmynk/addressbook/internal/storage/yamlfile"
	"github.com/mmynk/addressbook/pkg/logging"
)

func main() {
	if err := newRootCmd(run).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the root command. runFn receives the configuration
// after flags have been applied over the environment.
func newRootCmd(runFn func(context.Context, config.Config) error) *cobra.Command {
	cfg, cfgErr := config.Load()

	cmd := &cobra.Command{
		Use:   "assistant",
		Short: "Interactive address book for phones and birthdays",
		Long: `An interactive assistant that keeps contacts with phone numbers and birthdays.

Commands read from stdin:
  hello                             greet
  add <name> <phone>                add a contact or a phone to it
  change <name> <old> <new>         replace a phone number
  phone <name>                      list a contact's phones
  remove-phone <name> <phone>       remove a phone number
  delete <name>                     delete a contact
  all                               list every contact
  add-birthday <name> <DD.MM.YYYY>  set a birthday
  show-birthday <name>              show a birthday
  birthdays                         birthdays in the coming week
  exit | close                      save and quit

Settings come from ADDRESSBOOK_* environment variables; flags override them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runFn(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage driver: sqlite or yaml")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flags.StringVar(&cfg.YAMLPath, "yaml", cfg.YAMLPath, "YAML file path")
	flags.IntVar(&cfg.BirthdayWindow, "birthday-window", cfg.BirthdayWindow, "days ahead the birthdays command looks")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	return cmd
}

func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case config.StorageYAML:
		return yamlfile.New(cfg.YAMLPath)
	default:
		return sqlite.New(cfg.DBPath)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "storage", cfg.Storage, "error", err)
		return err
	}
	defer store.Close()

	b, err := store.Load(ctx)
	if err != nil {
		slog.Error("Failed to load address book", "error", err)
		return fmt.Errorf("load address book: %w", err)
	}
	slog.Info("Address book loaded", "storage", cfg.Storage, "contacts", b.Len())

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, m)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("Could not shut down metrics server", "error", err)
			}
		}()
	}

	// Unblock the pending stdin read on interrupt so the session ends
	// through the normal save path.
	go func() {
		<-ctx.Done()
		os.Stdin.Close()
	}()

	svc := service.NewContactService(b, service.WithBirthdayWindow(cfg.BirthdayWindow))
	sh := shell.New(os.Stdin, os.Stdout, b, store, middleware.WrapAll(svc.Handlers(), m), m)

	if err := sh.Run(ctx); err != nil {
		if errors.Is(err, shell.ErrSave) {
			slog.Error("Changes were not saved", "error", err)
		}
		return err
	}
	return nil
}

// serveMetrics starts the Prometheus endpoint in the background.
func serveMetrics(addr string, m *metrics.Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
	}
	go func() {
		slog.Info("Metrics server starting", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
	return srv
}
