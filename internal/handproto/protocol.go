// Package handproto defines the wire protocol spoken between the game and an
// external hand-tracking process.
//
// The tracker connects over a websocket and streams palm samples at a fixed
// rate. Every message is a JSON envelope {"t": type, "p": payload} so the
// two sides can evolve payloads independently of framing.
package handproto

import "encoding/json"

// Message type tags carried in Envelope.T.
const (
	MsgHello   = "hello"
	MsgInput   = "input"
	MsgWelcome = "welcome"
)

const (
	// Version is the protocol revision negotiated in the hello exchange.
	Version = 1

	// DefaultInputHz is the sample rate trackers are expected to send at.
	// The game treats the stream as lossy and only the newest sample wins,
	// so a slower tracker degrades latency, not correctness.
	DefaultInputHz = 30
)

// Envelope frames every message on the wire.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}
