//go:build js && wasm

package jsenv

import (
	"syscall/js"

	"github.com/sirupsen/logrus"
)

// ConsoleHook forwards log entries to the browser console
type ConsoleHook struct {
	console js.Value
}

func NewConsoleHook() *ConsoleHook {
	return &ConsoleHook{console: js.Global().Get("console")}
}

func (h *ConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	h.console.Call(consoleMethod(entry.Level), line)
	return nil
}

func consoleMethod(level logrus.Level) string {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return "error"
	case logrus.WarnLevel:
		return "warn"
	case logrus.InfoLevel:
		return "info"
	default:
		return "debug"
	}
}
