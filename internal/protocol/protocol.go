package protocol

import "encoding/json"

const Version = "1.0"

// Message types on the observer stream.
const (
	TypeHello = "HELLO"
	TypeRun   = "RUN"
	TypeFrame = "FRAME"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// HelloMsg is sent by an observer client after connecting.
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ObserverName    string `json:"observer_name,omitempty"`
}

// RunMsg describes the run an observer just attached to.
type RunMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	RunID           string `json:"run_id"`
	Seed            int64  `json:"seed"`
	Side            int    `json:"side"`
	Ticks           int    `json:"ticks"`
}

// FrameMsg is one tick of observable state: the rendered middle layer plus
// every agent event recorded this tick.
type FrameMsg struct {
	Type            string       `json:"type"`
	ProtocolVersion string       `json:"protocol_version"`
	Tick            uint64       `json:"tick"`
	Layer           string       `json:"layer"`
	Events          []AgentEvent `json:"events"`
	Digest          string       `json:"digest"`
}
