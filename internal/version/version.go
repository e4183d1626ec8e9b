// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - HTTP API, Prometheus metrics, JSON export, territory change events
// 0.2.0 - Territory wireframes and connection overlays in the map view
// 0.1.0 - Initial release: octant classifier, habitable zones, binary resolver, TUI map
