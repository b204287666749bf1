// Package version records the SDK release identity reported to the service.
package version

// Version is the SDK release version.
const Version = "1.0.0"

// UserAgent is sent with every request so the service can attribute traffic.
const UserAgent = "Reality Capture Go SDK/" + Version
