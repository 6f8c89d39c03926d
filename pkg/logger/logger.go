package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log — глобальный логгер процесса. Все подсистемы пишут через него.
var Log *logrus.Logger

// Init настраивает глобальный логгер. Вызывается один раз из main
// (и из TestMain в пакетах, которым нужны логи в тестах).
func Init() {
	Log = logrus.New()

	// Уровень берем из окружения. По умолчанию info,
	// для разработки удобно выставить LOG_LEVEL=debug.
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// LOG_FORMAT=json для продакшена и сборщиков логов,
	// текстовый формат с цветом для локальной разработки.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Component возвращает logger с проставленным полем component.
// Подсистемы держат такой entry у себя и не дублируют поле в каждом вызове.
func Component(name string) *logrus.Entry {
	if Log == nil {
		Init()
	}
	return Log.WithField("component", name)
}
