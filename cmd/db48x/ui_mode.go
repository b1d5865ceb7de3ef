package main

import (
	"fmt"
	"os"
	"strings"
)

// triState is the auto/on/off choice shared by --ui and --color: an
// explicit override, or "auto" to defer to isTerminal.
type triState string

const (
	triAuto triState = "auto"
	triOn   triState = "on"
	triOff  triState = "off"
)

func parseTriState(flag, value string) (triState, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return triAuto, nil
	case "on":
		return triOn, nil
	case "off":
		return triOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// resolve turns the tri-state into a decision, calling auto only when
// neither on nor off was forced.
func (t triState) resolve(auto func() bool) bool {
	switch t {
	case triOn:
		return true
	case triOff:
		return false
	default:
		return auto()
	}
}

// uiMode selects whether the repl subcommand drives its full-screen
// bubbletea view or falls back to a plain line-reader.
type uiMode = triState

const (
	uiModeAuto = triAuto
	uiModeOn   = triOn
	uiModeOff  = triOff
)

func readUIMode(value string) (uiMode, error) { return parseTriState("ui", value) }

func shouldUseTUI(mode uiMode) bool {
	return mode.resolve(func() bool { return isTerminal(os.Stdin) && isTerminal(os.Stdout) })
}

// useColor mirrors the same auto/on/off tri-state for --color; unlike
// --ui it checks a single stream, whichever cobra is writing to.
func useColor(value string, f *os.File) bool {
	mode, err := parseTriState("color", value)
	if err != nil {
		mode = triAuto
	}
	return mode.resolve(func() bool { return isTerminal(f) })
}
