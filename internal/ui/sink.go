package ui

import "github.com/philipparndt/go3mfexport/internal/logger"

// ConsoleSink prints export messages to the console
type ConsoleSink struct{}

func (ConsoleSink) Message(group logger.Group, msg string) {
	if group.IsError() {
		PrintError(group.String() + ": " + msg)
		return
	}
	PrintWarning(group.String() + ": " + msg)
}
