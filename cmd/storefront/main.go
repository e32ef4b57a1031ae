package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	"github.com/RoyceAzure/lab/storefront/internal/api/handler"
	"github.com/RoyceAzure/lab/storefront/internal/api/router"
	"github.com/RoyceAzure/lab/storefront/internal/appcontext"
	"github.com/RoyceAzure/lab/storefront/internal/config"
)

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	// 初始化 handler
	orderHandler := handler.NewOrderHandler(app.OrderService, app.OrderQueryService)

	server := api.NewServer(orderHandler)

	// 設置路由
	r := router.SetupRouter(server, app.TokenMaker, app.CheckoutLimiter, app.Logger)

	// 設定服務器參數
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		app.Logger.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error().Err(err).Msg("Server shutdown error")
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error().Err(err).Msg("Application shutdown error")
		}
		shutdownCompleted <- struct{}{}
	}()

	app.Logger.Info().Str("addr", srv.Addr).Msg("Server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.Logger.Fatal().Err(err).Msg("Server error")
	}

	<-shutdownCompleted
	app.Logger.Info().Msg("Server stopped")
}
