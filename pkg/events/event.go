// Package events converts kept session-log lines into typed connectivity
// events using a fixed, ordered set of recognizers.
package events

import "github.com/ridescope/ridescope/pkg/parser"

// Kind enumerates the event vocabulary.
type Kind string

const (
	KindDeviceConnected       Kind = "device_connected"
	KindDeviceDisconnected    Kind = "device_disconnected"
	KindTransportError        Kind = "transport_error"
	KindTransportDisconnected Kind = "transport_disconnected"
	KindDNSError              Kind = "dns_error"
	KindConnectionTimeout     Kind = "connection_timeout"
	KindServerHello           Kind = "server_hello"
	KindShutdownStarted       Kind = "shutdown_started"
)

// Event is a single typed occurrence on the session timeline.
// Events are created once by the parser and immutable afterward.
type Event struct {
	// Time is the wall-clock time-of-day from the line's [HH:MM:SS] prefix.
	Time parser.TimeOfDay

	// Kind categorizes the event.
	Kind Kind

	// Details is a free-form description. For transport errors it is
	// truncated to the configured maximum length.
	Details string
}

// Line vocabulary markers. These are the fixed phrases the training
// application logs for each event shape.
const (
	// DirectConnectMarker tags wired/LAN-mediated device traffic.
	DirectConnectMarker = "DirectConnect"

	// ActivelyRefusedMarker appears in transport errors when a device's
	// DirectConnect service rejected the TCP connection outright.
	ActivelyRefusedMarker = "actively refused"

	connectedStatus    = `has new connection status: connected`
	disconnectedStatus = `has new connection status: disconnected`
	errorTag           = "[ERROR]"

	transportLostMarker = "Lost TCP connection to server"
	dnsFailureMarker    = "Unable to resolve hostname"
	timeoutMarker       = "connection closed due to inactivity"
	serverHelloMarker   = "Received server hello"
	shutdownMarker      = "Shutting down gracefully"
)

// errorPhrases are the receive/connect failure shapes a transport error can
// take. Any one of them, on an [ERROR] line mentioning a resolved device,
// yields a KindTransportError event.
var errorPhrases = []string{
	"Failed to receive data",
	"Failed to connect",
	"Connection attempt failed",
}
