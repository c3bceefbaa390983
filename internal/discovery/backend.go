package discovery

import (
	"fmt"
	"time"
)

// Backend represents a discovered inventory backend on the network.
type Backend struct {
	// Name is the mDNS instance name (e.g., "inventory-api")
	Name string

	// Hostname is the mDNS hostname (e.g., "warehouse-pi.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.40")
	IP string

	// Port is the HTTP port the backend listens on
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "path=/", "version=1.2"
	Metadata map[string]string

	// DiscoveredAt is when the backend was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the backend
func (b *Backend) String() string {
	return fmt.Sprintf("Inventory backend %q (%s) at %s:%d", b.Name, b.Hostname, b.IP, b.Port)
}

// BaseURL returns the HTTP base URL to use for API calls against this backend
func (b *Backend) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", b.IP, b.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (b *Backend) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}
