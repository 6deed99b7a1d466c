//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	APP   Category = "APP"   // Orchestration, frame loop, worker routing
	FS    Category = "FS"    // Folder scans
	STORE Category = "STORE" // Session database
	UI    Category = "UI"    // Widget events, drag lifecycle
	MODEL Category = "MODEL" // Collection rebuilds and moves
	THUMB Category = "THUMB" // Thumbnail decode, cache, loader
	GRID  Category = "GRID"  // Drop resolution and reorder
	WATCH Category = "WATCH" // Folder watcher

	// Verbose categories
	FS_ENTRY  Category = "FS_ENTRY"  // Individual entry processing
	UI_LAYOUT Category = "UI_LAYOUT" // Per-frame layout (extremely verbose)
)

var (
	enabledCategories = map[Category]bool{
		APP:   true,
		FS:    true,
		STORE: true,
		UI:    true,
		MODEL: true,
		THUMB: true,
		GRID:  true,
		WATCH: true,

		FS_ENTRY:  false,
		UI_LAYOUT: false,
	}
	categoryMu sync.RWMutex

	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// FOLDERGRID_DEBUG=all | none | GRID,THUMB
	if env := os.Getenv("FOLDERGRID_DEBUG"); env != "" {
		categoryMu.Lock()
		defer categoryMu.Unlock()

		env = strings.ToUpper(env)
		switch env {
		case "ALL":
			for cat := range enabledCategories {
				enabledCategories[cat] = true
			}
		case "NONE":
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
		default:
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
			for _, cat := range strings.Split(env, ",") {
				enabledCategories[Category(strings.TrimSpace(cat))] = true
			}
		}
	}
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}
	logger.Printf("[%s] %s", cat, fmt.Sprintf(format, args...))
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// EnableAll enables all debug categories including verbose ones
func EnableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = true
	}
	categoryMu.Unlock()
}

// DisableAll disables all debug categories
func DisableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = false
	}
	categoryMu.Unlock()
}
