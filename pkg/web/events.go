package web

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	// SerialData carries bytes transferred over the serial port.
	SerialData Type = iota
	// ServerInfo carries the title of the running ROM, and is
	// the first message sent to a new client.
	ServerInfo
	// Backlog carries the serial output transferred before the
	// client connected.
	Backlog
	// ClientClosing is sent when the hub shuts down.
	ClientClosing
)

// Event is the first byte of every message received from a client.
type Event = uint8

const (
	KeepAlive Event = 254
	Closing   Event = 255
)
