package discovery

import (
	"testing"
)

func TestBackend_String(t *testing.T) {
	backend := &Backend{
		Name:     "inventory-api",
		Hostname: "warehouse-pi.local.",
		IP:       "192.168.1.40",
		Port:     5000,
	}

	expected := `Inventory backend "inventory-api" (warehouse-pi.local.) at 192.168.1.40:5000`
	if backend.String() != expected {
		t.Errorf("Backend.String() = %v, want %v", backend.String(), expected)
	}
}

func TestBackend_BaseURL(t *testing.T) {
	tests := []struct {
		name     string
		backend  *Backend
		expected string
	}{
		{
			name: "default backend port",
			backend: &Backend{
				IP:   "192.168.1.40",
				Port: 5000,
			},
			expected: "http://192.168.1.40:5000",
		},
		{
			name: "custom port",
			backend: &Backend{
				IP:   "10.0.0.5",
				Port: 8080,
			},
			expected: "http://10.0.0.5:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.backend.BaseURL(); got != tt.expected {
				t.Errorf("Backend.BaseURL() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBackend_GetMetadata(t *testing.T) {
	backend := &Backend{
		Metadata: map[string]string{
			"path":    "/",
			"version": "1.2",
		},
	}

	if got := backend.GetMetadata("version"); got != "1.2" {
		t.Errorf("GetMetadata(version) = %v, want 1.2", got)
	}

	if got := backend.GetMetadata("missing"); got != "" {
		t.Errorf("GetMetadata(missing) = %v, want empty string", got)
	}

	var empty Backend
	if got := empty.GetMetadata("path"); got != "" {
		t.Errorf("GetMetadata on empty backend = %v, want empty string", got)
	}
}
