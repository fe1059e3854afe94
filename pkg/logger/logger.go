package logger

import (
	"os"

	"go.uber.org/zap"
)

// L is the process-wide logger. Init must be called before use; packages that
// may run before Init (tests, helpers) can rely on the nop default.
var L = zap.NewNop()

// Init builds the global logger. APP_ENV=production selects the JSON
// production config; anything else gets the development console encoder.
func Init() error {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("APP_ENV") == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	L = l
	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = L.Sync()
}
