// Package lifecycle holds shared constants for process startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle operations such as server shutdown and
// database connectivity checks.
const DefaultTimeout = 10 * time.Second
