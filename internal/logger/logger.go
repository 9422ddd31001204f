package logger

import (
	"go.uber.org/zap"
)

// L is the process-wide structured logger. Init must run before use; until
// then it is a no-op logger so early code paths never panic.
var L = zap.NewNop()

// Init builds the logger for the given environment. Production gets JSON
// output, everything else gets the human-readable development encoder.
func Init(production bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if production {
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

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	_ = L.Sync()
}
