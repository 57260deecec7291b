package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a zap logger for the given environment. Anything other than
// "prod"/"production" gets the development config.
func New(env string) (*zap.Logger, error) {
	switch strings.ToLower(env) {
	case "prod", "production":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}
