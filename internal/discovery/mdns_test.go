package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantName string
		wantIP   string
		wantPort int
	}{
		{
			name: "backend with IPv4 address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "inventory-api"},
				HostName:      "warehouse-pi.local.",
				Port:          5000,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.40")},
				Text:          []string{"path=/", "version=1.2"},
			},
			wantNil:  false,
			wantName: "inventory-api",
			wantIP:   "192.168.1.40",
			wantPort: 5000,
		},
		{
			name: "backend with custom port",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "inventory-staging"},
				HostName:      "staging.local",
				Port:          8080,
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantNil:  false,
			wantName: "inventory-staging",
			wantIP:   "10.0.0.5",
			wantPort: 8080,
		},
		{
			name: "entry with no port defaults to backend port",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "inventory"},
				HostName:      "office.local",
				Port:          0,
				AddrIPv4:      []net.IP{net.ParseIP("172.16.0.1")},
			},
			wantNil:  false,
			wantName: "inventory",
			wantIP:   "172.16.0.1",
			wantPort: DefaultPort,
		},
		{
			name: "IPv6-only entry uses IPv6 address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "inventory-v6"},
				HostName:      "v6host.local",
				Port:          5000,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantNil:  false,
			wantName: "inventory-v6",
			wantIP:   "fe80::1",
			wantPort: 5000,
		},
		{
			name: "entry with no address is discarded",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "ghost"},
				HostName:      "ghost.local",
				Port:          5000,
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if backend != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", backend)
				}
				return
			}

			if backend == nil {
				t.Fatal("parseServiceEntry() = nil, want backend")
			}
			if backend.Name != tt.wantName {
				t.Errorf("Name = %v, want %v", backend.Name, tt.wantName)
			}
			if backend.IP != tt.wantIP {
				t.Errorf("IP = %v, want %v", backend.IP, tt.wantIP)
			}
			if backend.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", backend.Port, tt.wantPort)
			}
		})
	}
}

func TestScanner_parseServiceEntry_Metadata(t *testing.T) {
	scanner := NewScanner()

	entry := &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "inventory-api"},
		HostName:      "warehouse-pi.local.",
		Port:          5000,
		AddrIPv4:      []net.IP{net.ParseIP("192.168.1.40")},
		Text:          []string{"path=/", "flagonly"},
	}

	backend := scanner.parseServiceEntry(entry)
	if backend == nil {
		t.Fatal("parseServiceEntry() = nil, want backend")
	}

	if got := backend.GetMetadata("path"); got != "/" {
		t.Errorf("Metadata[path] = %v, want /", got)
	}
	if _, ok := backend.Metadata["flagonly"]; !ok {
		t.Error("key-only TXT record should be present with empty value")
	}
	if backend.DiscoveredAt.IsZero() || time.Since(backend.DiscoveredAt) > time.Minute {
		t.Errorf("DiscoveredAt = %v, should be recent", backend.DiscoveredAt)
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()
	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}
