package utils

import (
	"github.com/sirupsen/logrus"

	"salesreport-web/internal/logger"
)

// GetLogger returns the shared singleton logger instance
func GetLogger() *logrus.Logger {
	return logger.GetLogger()
}
