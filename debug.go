package multitouch

import "fmt"

// debugf prints a diagnostic line when debug output is enabled.
func (e *Engine[T]) debugf(format string, args ...any) {
	if !e.cfg.Debug || e.debugOut == nil {
		return
	}
	_, _ = fmt.Fprintf(e.debugOut, "[multitouch] "+format+"\n", args...)
}

// SetDebug toggles diagnostic output at runtime.
func (e *Engine[T]) SetDebug(on bool) {
	e.cfg.Debug = on
}
