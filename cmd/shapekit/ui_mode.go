package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode selects whether check draws the progress view while files run.
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

func (m uiMode) String() string {
	switch m {
	case uiModeOn:
		return "on"
	case uiModeOff:
		return "off"
	}
	return "auto"
}

func readUIMode(value string) (uiMode, error) {
	for _, m := range []uiMode{uiModeAuto, uiModeOn, uiModeOff} {
		if v := strings.ToLower(strings.TrimSpace(value)); v == m.String() || (v == "" && m == uiModeAuto) {
			return m, nil
		}
	}
	return uiModeAuto, fmt.Errorf("check: --ui must be auto, on or off, got %q", value)
}

// progressView reports whether a check run writing a report of the given
// format to out should draw the progress view. JSON reports and quiet runs
// never do; auto mode needs a terminal.
func (m uiMode) progressView(out *os.File, format string, quiet bool) bool {
	if format != "pretty" || quiet || m == uiModeOff {
		return false
	}
	return m == uiModeOn || isTerminal(out)
}
