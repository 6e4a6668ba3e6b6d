package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/cartloop/storefront-auth/internal/auth/http"
	"github.com/cartloop/storefront-auth/internal/auth/mail"
	"github.com/cartloop/storefront-auth/internal/auth/service"
	"github.com/cartloop/storefront-auth/internal/auth/store"
	"github.com/cartloop/storefront-auth/internal/auth/store/drivers/sqlite"
	"github.com/cartloop/storefront-auth/pkg/cryptox"
	"github.com/cartloop/storefront-auth/pkg/jwtx"
	"github.com/cartloop/storefront-auth/pkg/slogx"
)

const BuildVersion = "v0.1.0"

type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	mailer mail.Mailer

	tokenService    *service.TokenService
	signupService   *service.SignupService
	passwordService *service.PasswordService
	userService     *service.UserService
	housekeeping    *service.HousekeepingService

	router *httpapi.Router
	server *http.Server
}

func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slogx.New(slogx.Config{
		Service: "storefront-auth",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	app := &Application{
		cfg:    cfg,
		logger: logger,
	}

	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	app.initHTTP()

	return app, nil
}

func (a *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", a.cfg.DatabaseFile)

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	a.db = db
	a.logger.Info("database ready", "file", a.cfg.DatabaseFile)
	return nil
}

func (a *Application) initServices() error {
	if a.cfg.SMTPHost != "" {
		a.mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     a.cfg.SMTPHost,
			Port:     a.cfg.SMTPPort,
			Username: a.cfg.SMTPUsername,
			Password: a.cfg.SMTPPassword,
			From:     a.cfg.SMTPFrom,
		})
	} else {
		a.logger.Warn("SMTP_HOST not set, verification codes will be logged instead of emailed")
		a.mailer = &mail.LogMailer{Logger: a.logger}
	}

	a.tokenService = &service.TokenService{
		Store:           a.db,
		AccessSigner:    jwtx.NewSigner([]byte(a.cfg.AccessSecret)),
		AccessVerifier:  jwtx.NewVerifier([]byte(a.cfg.AccessSecret), a.cfg.Issuer),
		RefreshSigner:   jwtx.NewSigner([]byte(a.cfg.RefreshSecret)),
		RefreshVerifier: jwtx.NewVerifier([]byte(a.cfg.RefreshSecret), a.cfg.Issuer),
		Issuer:          a.cfg.Issuer,
		AccessTTL:       a.cfg.AccessTTL,
		RefreshTTL:      a.cfg.RefreshTTL,
	}

	a.signupService = &service.SignupService{
		Store:  a.db,
		Mailer: a.mailer,
		Tokens: a.tokenService,
	}

	a.passwordService = &service.PasswordService{
		Store:  a.db,
		Mailer: a.mailer,
	}

	a.userService = &service.UserService{
		Store: a.db,
	}

	a.housekeeping = service.NewHousekeepingService(a.db, a.logger, a.cfg.HousekeepingInterval)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := service.SeedSuperAdmin(ctx, a.db, a.cfg.SeedSuperAdminEmail, a.cfg.SeedSuperAdminPassword); err != nil {
		return fmt.Errorf("seed superadmin: %w", err)
	}

	return nil
}

func (a *Application) initHTTP() {
	cookies := httpapi.CookiePolicy{Secure: a.cfg.Env == "prod"}

	a.router = httpapi.NewRouter(a.tokenService, cookies, BuildVersion, a.db, a.logger)
	a.router.SignupService = a.signupService
	a.router.PasswordService = a.passwordService
	a.router.UserService = a.userService
	a.router.ApplyRoutes()

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Port),
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Run starts the HTTP server and housekeeping worker and blocks until the
// server fails or a termination signal arrives.
func (a *Application) Run() error {
	a.housekeeping.Start()

	serverErrors := make(chan error, 1)

	go func() {
		a.logger.Info("starting http server", "addr", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		a.logger.Info("shutdown signal received", "signal", sig.String())
		return a.Shutdown()
	}
}

// Shutdown drains in-flight requests, stops the housekeeping worker and
// closes the database.
func (a *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("graceful shutdown failed, forcing close", "error", err)
		if closeErr := a.server.Close(); closeErr != nil {
			return fmt.Errorf("force close server: %w", closeErr)
		}
	}

	a.housekeeping.Stop()

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	a.logger.Info("shutdown complete")
	return nil
}
