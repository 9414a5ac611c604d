package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/thonia-chat/internal/config"
	"github.com/zhouzirui/thonia-chat/internal/logging"
	"github.com/zhouzirui/thonia-chat/internal/render"
	"github.com/zhouzirui/thonia-chat/internal/service/chatclient"
	"github.com/zhouzirui/thonia-chat/internal/service/predictions"
	"github.com/zhouzirui/thonia-chat/internal/widget"
)

const prompt = "> "

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	chatURL := flag.String("url", cfg.Chat.URL, "chat endpoint")
	predictionsURL := flag.String("predictions", cfg.Predictions.URL, "predictions endpoint, empty to skip")
	timeout := flag.Duration("timeout", cfg.Chat.Timeout, "per-request timeout, 0 for none")
	level := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logger, err := logging.New(*level)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer logger.Sync()

	client := chatclient.New(*chatURL, chatclient.WithTimeout(*timeout))
	view := newTerminalView(os.Stdout, render.NewTerminal(), prompt)
	controller := widget.New(view, view, client, widget.Config{
		TypingText:   cfg.Chat.TypingText,
		FallbackText: cfg.Chat.FallbackText,
	}, logger)

	if cfg.Predictions.Enabled && *predictionsURL != "" {
		trigger := predictions.NewTrigger(predictions.New(*predictionsURL, nil), func(items []predictions.Prediction) {
			logger.Info("predictions available", zap.Int("count", len(items)))
		}, logger)
		controller.WithLoader(trigger)
	}
	controller.Load(ctx)

	fmt.Fprintln(os.Stdout, "ThonIA - /history pour revoir la conversation, /quit pour sortir")
	if err := run(ctx, os.Stdin, view, controller); err != nil {
		logger.Error("input error", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, in io.Reader, view *terminalView, controller *widget.Controller) error {
	scanner := bufio.NewScanner(in)
	view.Focus()

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "/quit", "/exit":
			return nil
		case "/history":
			view.printHistory()
			view.Focus()
			continue
		}

		if _, err := controller.Submit(ctx, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
