package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/robsonsvicero/financassimples/config"
)

var log zerolog.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configura o logger global conforme o ambiente: console colorido em
// desenvolvimento, JSON puro em produção.
func Init(cfg *config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.App.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.App.Environment == "production" {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	log = zerolog.New(output).With().Timestamp().Logger()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
