package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Companion is a discovered companion service on the network
type Companion struct {
	// Instance is the advertised service instance name (e.g., "textwatch-phone")
	Instance string

	// Host is the mDNS hostname (e.g., "phone.local.")
	Host string

	// IP is the address to dial, IPv4 when available
	IP string

	// Port is the HTTP/WebSocket port
	Port int

	// Path is the WebSocket endpoint path from the TXT record
	Path string

	// Metadata contains all TXT record data
	// Common fields: "path=/ws", "version=1.2.0"
	Metadata map[string]string

	// DiscoveredAt is when the companion was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the companion
func (c *Companion) String() string {
	return fmt.Sprintf("Companion %s (%s) at %s", c.Instance, c.Host, net.JoinHostPort(c.IP, strconv.Itoa(c.Port)))
}

// URL returns the WebSocket URL the face dials
func (c *Companion) URL() string {
	return "ws://" + net.JoinHostPort(c.IP, strconv.Itoa(c.Port)) + c.Path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (c *Companion) GetMetadata(key string) string {
	if c.Metadata == nil {
		return ""
	}
	return c.Metadata[key]
}
