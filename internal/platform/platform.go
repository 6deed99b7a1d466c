// Package platform wraps desktop integration: native folder and file
// choosers, and opening files with their default application.
package platform

import "errors"

// ErrNoDialog is returned when no native chooser is available; callers
// fall back to a typed path.
var ErrNoDialog = errors.New("platform: no native file dialog")

// ListFilter is the chooser filter for saved folder lists.
const ListFilter = "*.fecf"
