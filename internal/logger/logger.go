// Package logger builds the process-wide zap logger. Development output is
// selected with FINLIT_ENV=dev; anything else gets production JSON logs.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// New constructs the sugared logger for the current environment.
func New() *zap.SugaredLogger {
	var (
		log *zap.Logger
		err error
	)
	opts := []zap.Option{
		zap.AddStacktrace(zap.ErrorLevel),
	}

	if strings.ToLower(os.Getenv("FINLIT_ENV")) == "dev" {
		log, err = zap.NewDevelopment(opts...)
	} else {
		opts = append(opts, zap.Fields(zap.String("env", os.Getenv("FINLIT_ENV"))))
		log, err = zap.NewProduction(opts...)
	}
	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}
	return log.Sugar()
}

func init() {
	zap.ReplaceGlobals(New().Desugar())
}
