// Package logging provides a small leveled logger for cmd/aseinfo. The core
// aseprite package stays free of logging except for the single
// unknown-blend-mode fallback notice (spec §7); everything else the CLI
// wants to report goes through here.
package logging

import (
	"fmt"
	"log"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var levels = []string{LevelDebug, LevelInfo, LevelWarn, LevelError}

var currentLevel = LevelInfo

// SetLevel sets the global minimum level; messages below it are dropped.
func SetLevel(level string) {
	currentLevel = level
}

func Debug(format string, args ...interface{}) {
	if shouldLog(LevelDebug) {
		log.Printf("[DEBUG] "+format, args...)
	}
}

func Info(format string, args ...interface{}) {
	if shouldLog(LevelInfo) {
		fmt.Printf(format+"\n", args...)
	}
}

func Warn(format string, args ...interface{}) {
	if shouldLog(LevelWarn) {
		log.Printf("[WARN] "+format, args...)
	}
}

func Error(format string, args ...interface{}) {
	if shouldLog(LevelError) {
		log.Printf("[ERROR] "+format, args...)
	}
}

func shouldLog(level string) bool {
	current, want := -1, -1
	for i, l := range levels {
		if l == currentLevel {
			current = i
		}
		if l == level {
			want = i
		}
	}
	return want >= current
}
