// Package discovery finds and advertises the textwatch companion over mDNS.
//
// The companion registers itself with the "_textwatch._tcp" service type and
// a TXT record naming its WebSocket path. The face browses for that type when
// no companion address is configured.
//
// # Usage Example
//
//	// Companion side
//	server, err := discovery.Advertise("textwatch-phone", 8080, []string{"path=/ws"})
//	if err != nil {
//	    return err
//	}
//	defer server.Shutdown()
//
//	// Face side
//	companion, err := discovery.NewScanner().Find(ctx)
//	if err != nil {
//	    return err
//	}
//	client := transport.NewClient(companion.URL(), chain)
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Face and companion must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
