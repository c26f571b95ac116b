package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/client"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/config"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/logs"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/repository"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/server"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logs.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}

	db, err := client.InitDB(&cfg.Database)
	if err != nil {
		logger.Error("init database", "error", err)
		os.Exit(1)
	}

	paystackClient := client.NewPaystackClient(&cfg.Paystack)
	mailer, err := client.NewSMTPMailer(&cfg.SMTP)
	if err != nil {
		logger.Error("init mailer", "error", err)
		os.Exit(1)
	}

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	rateRepo := repository.NewShippingRateRepository(db)
	otpRepo := repository.NewOTPRepository(db)

	shippingService := service.NewShippingService(rateRepo)
	checkoutService := service.NewCheckoutService(
		db, paystackClient, orderRepo, productRepo, shippingService,
		cfg.Paystack.CallbackURL, logger,
	)
	paymentService := service.NewPaymentService(
		db, paystackClient, orderRepo, productRepo, mailer,
		cfg.Admin.Email, logger,
	)
	orderService := service.NewOrderService(orderRepo, mailer, logger)
	recoveryService := service.NewRecoveryService(orderRepo, otpRepo, mailer, logger)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(
		logger, cfg.Admin.APIKey,
		checkoutService, paymentService, orderService,
		shippingService, recoveryService,
	)

	logger.Info("starting HTTP server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		os.Exit(1)
	}
}
