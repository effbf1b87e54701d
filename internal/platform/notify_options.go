// Package platform talks to the desktop notification service.
package platform

import "time"

// AppName is reported to the notification service.
const AppName = "snipmark"

// DefaultTimeout is how long a notification stays up unless Options says
// otherwise.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed.
type Options struct {
	// IconPath, when non-empty, points to an image shown with the
	// notification if the service supports it.
	IconPath string
	Timeout  time.Duration
}
