package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultChatURL        = "http://127.0.0.1:5000/api/chat"
	defaultPredictionsURL = "http://127.0.0.1:5000/api/predictions"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server      ServerConfig
	Chat        ChatConfig
	Predictions PredictionsConfig
	Log         LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	predictions, err := loadPredictionsConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:      server,
		Chat:        chat,
		Predictions: predictions,
		Log:         LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "info")},
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// ChatConfig 描述聊天后端与挂件文案。
type ChatConfig struct {
	URL          string
	Timeout      time.Duration
	TypingText   string
	FallbackText string
}

func loadChatConfig() (ChatConfig, error) {
	timeout, err := parseDurationEnv("CHAT_TIMEOUT", 0)
	if err != nil {
		return ChatConfig{}, err
	}
	if timeout < 0 {
		return ChatConfig{}, fmt.Errorf("invalid CHAT_TIMEOUT value %q: must not be negative", os.Getenv("CHAT_TIMEOUT"))
	}

	return ChatConfig{
		URL:          getEnvOrDefault("CHAT_API_URL", defaultChatURL),
		Timeout:      timeout,
		TypingText:   getEnvOrDefault("CHAT_TYPING_TEXT", ""),
		FallbackText: getEnvOrDefault("CHAT_FALLBACK_TEXT", ""),
	}, nil
}

// PredictionsConfig 描述加载时触发的预测数据源。
type PredictionsConfig struct {
	URL     string
	Enabled bool
}

func loadPredictionsConfig() (PredictionsConfig, error) {
	enabled, err := parseBoolEnv("PREDICTIONS_ENABLED", true)
	if err != nil {
		return PredictionsConfig{}, err
	}

	return PredictionsConfig{
		URL:     getEnvOrDefault("PREDICTIONS_API_URL", defaultPredictionsURL),
		Enabled: enabled,
	}, nil
}

// LogConfig 描述日志级别。
type LogConfig struct {
	Level string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

// parseDurationEnv 接受 "30s" 这类时长，也接受纯数字秒数。
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
