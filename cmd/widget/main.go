package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zhouzirui/thonia-chat/internal/config"
	"github.com/zhouzirui/thonia-chat/internal/handler"
	"github.com/zhouzirui/thonia-chat/internal/handler/live"
	"github.com/zhouzirui/thonia-chat/internal/handler/page"
	"github.com/zhouzirui/thonia-chat/internal/logging"
	"github.com/zhouzirui/thonia-chat/internal/service/chatclient"
	"github.com/zhouzirui/thonia-chat/internal/service/predictions"
	"github.com/zhouzirui/thonia-chat/internal/widget"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Info("no .env file loaded, using system environment only", zap.Error(envErr))
	}

	chatClient := chatclient.New(cfg.Chat.URL, chatclient.WithTimeout(cfg.Chat.Timeout))
	logger.Info("chat backend configured", zap.String("url", chatClient.URL()))

	var newLoader live.LoaderFactory
	if cfg.Predictions.Enabled {
		predictionsClient := predictions.New(cfg.Predictions.URL, nil)
		newLoader = func(push predictions.Sink) widget.Loader {
			return predictions.NewTrigger(predictionsClient, push, logger)
		}
	} else {
		logger.Info("predictions feed disabled by configuration")
	}

	widgetCfg := widget.Config{
		TypingText:   cfg.Chat.TypingText,
		FallbackText: cfg.Chat.FallbackText,
	}
	liveHandler := live.New(func() widget.Client { return chatClient }, newLoader, widgetCfg, logger)
	pageHandler := page.New(page.Data{}, logger)

	router := handler.NewRouter(pageHandler, liveHandler, logger)

	if err := startServer(ctx, cfg.Server, router, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("ThonIA chat widget listening", zap.String("addr", serverCfg.Addr))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
