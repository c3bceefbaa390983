package api

import (
	"fmt"
	"strings"
)

// Item is an inventory record as stored by the backend.
// The ID is assigned by the backend on create and never changes.
type Item struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ItemFields is the writable portion of an item, used as the create and
// update payload. It deliberately has no ID field: the ID is never part of
// a request body.
type ItemFields struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Validate checks the field constraints the backend enforces.
func (f ItemFields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if f.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if f.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

// Paste is the result of creating a paste on the backend's pastebin.
type Paste struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

// LogReceipt is the backend's acknowledgement of a log message.
type LogReceipt struct {
	Status      string `json:"status"`
	Level       string `json:"level"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Destination string `json:"destination"`
}

// Environment is the backend's environment report. The structure is
// backend-defined and treated as opaque key/value data.
type Environment map[string]any

// Health is the backend's health check report.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// LogLevels are the log levels accepted by the backend, in severity order.
var LogLevels = []string{"debug", "info", "warning", "error", "critical"}

// ValidLogLevel reports whether level is one of LogLevels.
func ValidLogLevel(level string) bool {
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}
	return false
}

// FormatCompact returns a single-line summary of the item.
func (i Item) FormatCompact() string {
	return fmt.Sprintf("#%d %s qty=%d price=%.2f", i.ID, i.Name, i.Quantity, i.Price)
}

// FormatDetailed returns a multi-line description of the item.
func (i Item) FormatDetailed() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:       %d\n", i.ID)
	fmt.Fprintf(&b, "Name:     %s\n", i.Name)
	fmt.Fprintf(&b, "Quantity: %d\n", i.Quantity)
	fmt.Fprintf(&b, "Price:    $%.2f", i.Price)
	return b.String()
}
