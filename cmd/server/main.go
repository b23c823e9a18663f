package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"deliveryClient/internal/config"
	"deliveryClient/internal/modules/storefront/application/handler"
	"deliveryClient/internal/modules/storefront/application/usecase"
	"deliveryClient/internal/modules/storefront/domain"
	"deliveryClient/internal/modules/storefront/infrastructure"
	transport "deliveryClient/internal/modules/storefront/interface"
	"deliveryClient/internal/platform/broker"
	"deliveryClient/internal/platform/storage"
	"deliveryClient/internal/shared/auth"
	"deliveryClient/internal/shared/logging"
	"deliveryClient/internal/shared/session"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID))

	// Prices and totals are served as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	store, err := storage.NewDiskStore(cfg.Storage.Directory)
	if err != nil {
		slog.Error("storage setup failed", slog.String("directory", cfg.Storage.Directory), slog.Any("error", err))
		os.Exit(1)
	}
	tokens := auth.NewTokenStore(store, auth.NewVerifyingInspector(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey))
	identity := usecase.NewIdentity(session.NewProvider(store), tokens)

	hub := infrastructure.NewHub()
	rest := infrastructure.NewRESTClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil).WithTokens(tokens)
	rest.OnUnauthorized(func(redirect string) {
		slog.Warn("session expired", slog.String("redirect", redirect))
		hub.Broadcast(context.Background(), domain.NewMessage(domain.SystemEntity, domain.ActionUnauthorized, "", map[string]string{"redirect": redirect}))
	})

	storefront := usecase.NewStorefront(identity, usecase.Gateways{
		Restaurants: infrastructure.NewRestaurantGateway(rest),
		Dishes:      infrastructure.NewDishGateway(rest),
		Orders:      infrastructure.NewOrderGateway(rest),
		Reviews:     infrastructure.NewReviewGateway(rest),
		Cart:        infrastructure.NewCartGateway(rest),
		Auth:        infrastructure.NewAuthGateway(rest),
	}, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loadCtx, loadCancel := context.WithTimeout(ctx, 2*cfg.REST.Timeout)
	if err := storefront.LoadAll(loadCtx); err != nil {
		// Collections that failed stay Errored and reload on the next request or change event.
		slog.Error("initial load incomplete", slog.Any("error", err))
	}
	loadCancel()

	// Register one change-event handler per configured kafka topic.
	registry := infrastructure.NewHandlerRegistry()
	for entity, topics := range cfg.Kafka.Topics {
		for _, topic := range topics {
			registry.Register(handler.NewEntityStreamHandler(entity, topic, cfg.Websocket.AllowedActions, storefront, hub))
		}
	}
	consumers := broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, registry.Topics())

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	transport.NewHandler(storefront, hub, transport.Options{
		Claims:         tokens,
		AllowedActions: cfg.Websocket.AllowedActions,
		SendBuffer:     cfg.Websocket.SendBuffer,
	}).Register(e)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", slog.Any("error", err))
	}
	consumers.Wait()
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	file, err := logging.OpenDailyFile(cfg.Directory, time.Now())
	if err != nil {
		return nil, nil, err
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
		Component: "delivery-client",
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
