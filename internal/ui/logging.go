// Package ui provides the daemon's leveled console output.
package ui

import (
	"github.com/pterm/pterm"
)

// SetDebugEnabled toggles Debug output. It is off by default.
func SetDebugEnabled(enabled bool) {
	pterm.PrintDebugMessages = enabled
}

// SetColorEnabled toggles colour and styling of all output.
func SetColorEnabled(enabled bool) {
	if enabled {
		pterm.EnableColor()
		pterm.EnableStyling()
		return
	}
	pterm.DisableColor()
	pterm.DisableStyling()
}

func Debug(format string, a ...interface{}) {
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}
