package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "tourdesk/internal/config"
	"tourdesk/internal/db"
	"tourdesk/internal/gateway/sms"
	router "tourdesk/internal/http"
	"tourdesk/internal/http/handlers"
	"tourdesk/internal/repositories"
	"tourdesk/internal/services"
	"tourdesk/internal/storage"
	"tourdesk/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

func main() {
	env := intconfig.LoadEnv()

	addr := pflag.String("addr", env.AppAddr, "HTTP listen address")
	migrate := pflag.Bool("migrate", true, "create missing tables on startup")
	pflag.Parse()
	env.AppAddr = *addr

	utils.SetLogLevel(env.LogLevel)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	if err := env.CheckSecrets(); err != nil {
		utils.Log.Fatalf("config: %v", err)
	}
	if env.InsecureJWTSecret() {
		utils.Log.Warn("JWT_SECRET is not set, signing tokens with the development placeholder")
	}

	conn, err := intconfig.OpenDB(env)
	if err != nil {
		utils.Log.Fatalf("database connection failed: %v", err)
	}
	defer conn.Close()
	utils.Log.Infof("connected to MySQL %s:%s/%s", env.DBHost, env.DBPort, env.DBName)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()
	if *migrate {
		if err := db.EnsureSchema(startCtx, conn); err != nil {
			utils.Log.Fatalf("schema setup failed: %v", err)
		}
	}

	files, err := storage.NewLocal(env.UploadDir, env.PublicBaseURL)
	if err != nil {
		utils.Log.Fatalf("upload storage: %v", err)
	}

	hs := wire(env, conn, files)
	created, err := hs.Auth.EnsureBootstrapAdmin(startCtx, env.AdminUsername, env.AdminPassword)
	if err != nil {
		utils.Log.Fatalf("bootstrap admin: %v", err)
	}
	if created {
		utils.Log.Infof("bootstrap admin %q created", env.AdminUsername)
	}

	r := router.NewRouter(env, hs)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Log.Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	utils.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Log.Fatalf("server shutdown failed: %v", err)
	}

	utils.Log.Info("server stopped cleanly")
}

func wire(env intconfig.Env, conn *sql.DB, files storage.Local) *handlers.Handlers {
	bookings := repositories.BookingRepository{DB: conn}
	drivers := repositories.DriverRepository{DB: conn}
	tours := repositories.TourRepository{DB: conn}
	promos := repositories.PromoRepository{DB: conn}
	settings := repositories.SettingsRepository{DB: conn}
	smsLogs := repositories.SMSLogRepository{DB: conn}
	admins := repositories.AdminRepository{DB: conn}

	var sender services.SMSSender
	if env.SMSGatewayURL != "" {
		sender = sms.New(env.SMSGatewayURL, env.SMSAPIKey, env.SMSSender)
	}
	smsSvc := services.SMSService{Sender: sender, LogStore: smsLogs, Settings: settings}
	analytics := services.AnalyticsService{Bookings: bookings, Drivers: drivers, Settings: settings}

	return &handlers.Handlers{
		DB: conn,
		Bookings: services.BookingService{
			Bookings: bookings,
			Drivers:  drivers,
			Tours:    tours,
			Promos:   promos,
			Settings: settings,
			Notifier: smsSvc,
		},
		Drivers:   services.DriverService{Repo: drivers, Files: files, Settings: settings, Notifier: smsSvc},
		Tours:     services.TourService{Repo: tours, Files: files},
		Promos:    services.PromoService{Repo: promos},
		Settings:  services.SettingsService{Repo: settings},
		SMS:       smsSvc,
		Analytics: analytics,
		Docs:      services.DocsService{Bookings: bookings, Analytics: analytics, Settings: settings},
		Backup: services.BackupService{
			Bookings: bookings,
			Drivers:  drivers,
			Tours:    tours,
			Promos:   promos,
			Settings: settings,
			SMSLogs:  smsLogs,
		},
		Auth: services.AuthService{Admins: admins, Secret: []byte(env.JWTSecret)},
	}
}
