package middleware

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LogConfig holds configuration for the request logging middleware
type LogConfig struct {
	// Enable console logging
	Console bool
	// Enable file logging
	File bool
	// Log file path
	LogFilePath string
	// Skip logging for specific paths
	SkipPaths []string
}

// LogData contains all the information that will be logged
type LogData struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latency"`
	IP        string        `json:"ip"`
	UserID    interface{}   `json:"user_id,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// DefaultLogConfig returns a default configuration for the logging middleware
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Console:     true,
		File:        false,
		LogFilePath: "logs/requests.log",
	}
}

// RequestLogger logs every request with status and latency.
func RequestLogger(config ...LogConfig) fiber.Handler {
	cfg := DefaultLogConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	var file *os.File
	if cfg.File {
		if err := os.MkdirAll("logs", 0755); err == nil {
			f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				log.Printf("Error opening request log file: %v\n", err)
			} else {
				file = f
			}
		}
	}

	return func(c *fiber.Ctx) error {
		for _, path := range cfg.SkipPaths {
			if c.Path() == path {
				return c.Next()
			}
		}

		start := time.Now()
		err := c.Next()

		data := LogData{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    c.Response().StatusCode(),
			Latency:   time.Since(start),
			IP:        c.IP(),
		}
		if err != nil {
			data.Error = err.Error()
		}

		if cfg.Console {
			log.Printf("%s %s %d %v", data.Method, data.Path, data.Status, data.Latency)
		}
		if file != nil {
			if line, jsonErr := json.Marshal(data); jsonErr == nil {
				file.Write(append(line, '\n'))
			}
		}

		return err
	}
}
