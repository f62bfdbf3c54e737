package logger

import (
	"io"
	"os"
	"sync"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hardikguptaofficialgit/toura-sub000/internal/config"
)

var (
	instance *logrus.Logger
	once     sync.Once
)

// New returns the process-wide logger. The first call configures it
// from cfg; later calls return the same instance.
func New(cfg config.LoggingConfig) *logrus.Logger {
	once.Do(func() {
		instance = logrus.New()

		level, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			level = logrus.InfoLevel
		}
		instance.SetLevel(level)

		instance.SetFormatter(&formatter.Formatter{
			NoColors:        cfg.File != "",
			TimestampFormat: "2006-01-02 15:04:05",
			HideKeys:        false,
		})

		writers := []io.Writer{os.Stderr}
		if cfg.File != "" {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.File,
				LocalTime:  true,
				Compress:   true,
				MaxSize:    cfg.MaxSizeMB,
				MaxAge:     cfg.MaxAgeDays,
				MaxBackups: cfg.MaxBackups,
			})
		}
		instance.SetOutput(io.MultiWriter(writers...))
	})

	return instance
}
