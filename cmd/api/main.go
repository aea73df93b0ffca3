package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/zipcart/auth-api/internal/config"
	"github.com/zipcart/auth-api/internal/logging"
	"github.com/zipcart/auth-api/internal/repository/postgres"
	"github.com/zipcart/auth-api/internal/service"
	transporthttp "github.com/zipcart/auth-api/internal/transport/http"
	"github.com/zipcart/auth-api/internal/transport/mail"
	"github.com/zipcart/auth-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	store := postgres.NewStore(db)
	if err := store.RunMigrations(context.Background()); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	var mailer service.OtpMailSender
	if cfg.SMTPHost != "" {
		mailer = mail.NewOtpMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		log.Println("SMTP not configured, OTP mail disabled")
	}

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	otpService := service.NewOtpService(store.Otps(), cfg.OtpTTL)
	authService := service.NewAuthService(store, otpService, mailer, jwtManager, cfg.GoogleAudience)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, authService)
	transporthttp.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
