package mem

import (
	"fmt"
	"log/slog"
	"os"
)

// osExit is swapped out by tests.
var osExit = os.Exit

// halt reports an unrecoverable allocator failure and stops. Heap corruption
// and mapping failure are never handed back to callers as errors.
func (a *Arena) halt(context string, err error) {
	err = fmt.Errorf("%s: %w", context, err)
	a.log.Error("allocator halted", "context", context, "err", err)
	a.cfg.OnFatal(err)
	panic(err)
}

// exitOnFatal is the default OnFatal hook. The arena logger discards by
// default, so the error also goes to the process-wide slog logger.
func exitOnFatal(err error) {
	slog.Default().Error("memkit: fatal allocator error", "err", err)
	osExit(2)
}
