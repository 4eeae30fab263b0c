package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogger configura o logrus global. LOG_FORMAT=json liga o formato
// estruturado usado em produção; o padrão é texto legível para dev.
func SetupLogger() {
	if os.Getenv("LOG_FORMAT") == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// Log devolve um logger etiquetado com o componente de origem.
func Log(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
