package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/collab-booking/internal/application"
	"github.com/example/collab-booking/internal/booking"
	"github.com/example/collab-booking/internal/config"
	apihttp "github.com/example/collab-booking/internal/http"
	"github.com/example/collab-booking/internal/logging"
)

const shutdownTimeout = 10 * time.Second

type serveFunc func(ctx context.Context, srv *http.Server, logger *slog.Logger) error

type apiOptions struct {
	now            func() time.Time
	tokenGenerator func() string
	passwordParams application.Argon2idParams
}

// api is the assembled server side of the booking system.
type api struct {
	handler  http.Handler
	engine   *booking.Engine
	sessions []booking.Session
	close    func()
}

func newServeCmd(a *app) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the booking API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.LoadFrom(v)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger := logging.New(level, cfg.LogFormat, cmd.ErrOrStderr())

			built, err := buildAPI(cfg, logger, apiOptions{now: a.now, passwordParams: application.DefaultArgon2idParams})
			if err != nil {
				return err
			}
			defer built.close()

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
				Handler:           built.handler,
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       60 * time.Second,
			}
			logger.Info("server listening",
				"addr", srv.Addr,
				"sessions", len(built.sessions),
				"rooms", len(built.engine.ListRooms()),
			)
			return a.serve(cmd.Context(), srv, logger)
		},
	}

	cmd.Flags().Int("port", 0, "HTTP port (env COLLAB_HTTP_PORT, default 8080)")
	cmd.Flags().String("catalog", "", "TOML file with the session table and room inventory (env COLLAB_CATALOG_FILE)")
	cmd.Flags().String("log-level", "", "debug, info, warn or error (env COLLAB_LOG_LEVEL)")
	cmd.Flags().String("log-format", "", "json or text (env COLLAB_LOG_FORMAT)")
	_ = v.BindPFlag(config.KeyHTTPPort, cmd.Flags().Lookup("port"))
	_ = v.BindPFlag(config.KeyCatalogFile, cmd.Flags().Lookup("catalog"))
	_ = v.BindPFlag(config.KeyLogLevel, cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, cmd.Flags().Lookup("log-format"))

	return cmd
}

// buildAPI wires the catalogs, engine, services and router for cfg. Sessions
// are generated for the current day in cfg.Location.
func buildAPI(cfg config.Config, logger *slog.Logger, opts apiOptions) (*api, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if opts.now == nil {
		opts.now = time.Now
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	rooms, err := booking.NewRoomCatalog(catalog.Rooms)
	if err != nil {
		return nil, fmt.Errorf("failed to build room catalog: %w", err)
	}
	sessions := booking.NewSessionCatalog(opts.now().In(loc), catalog.Slots)
	engine := booking.NewEngine(sessions, rooms, booking.NewLedger(nil, opts.now))

	unsubscribe := engine.Subscribe(func(record booking.Record) {
		logger.Debug("booking recorded",
			"booking_id", record.ID,
			"room_id", record.RoomID,
			"session_id", record.SessionID,
		)
	})

	store, err := application.NewDemoCredentialStore(cfg.DemoEmail, cfg.DemoPassword, cfg.DemoName, opts.passwordParams)
	if err != nil {
		unsubscribe()
		return nil, fmt.Errorf("failed to prepare demo credentials: %w", err)
	}
	auth := application.NewAuthServiceWithLogger(store, nil, opts.tokenGenerator, opts.now, application.AuthOptions{
		TokenTTL:  cfg.TokenTTL,
		MaxTokens: cfg.MaxTokens,
	}, logger)
	bookings := application.NewBookingServiceWithLogger(engine, opts.now, logger)

	handler := apihttp.NewRouter(apihttp.RouterConfig{
		Auth:         apihttp.NewAuthHandler(auth, logger),
		Sessions:     apihttp.NewSessionHandler(bookings, logger),
		Rooms:        apihttp.NewRoomHandler(bookings, logger),
		Bookings:     apihttp.NewBookingHandler(bookings, logger),
		Authenticate: apihttp.RequireSession(auth, logger),
		Middleware:   []func(http.Handler) http.Handler{apihttp.RequestLogger(logger)},
	})

	return &api{
		handler:  handler,
		engine:   engine,
		sessions: sessions.All(),
		close:    unsubscribe,
	}, nil
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down server")
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
