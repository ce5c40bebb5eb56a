// Package network connects tracking clients to the simulation over
// WebSocket: hand frames come in, HUD snapshots go out.
package network

import "encoding/json"

// Client message types.
const (
	MsgHands = "hands"
	MsgScene = "scene"
)

// ClientMessage is the envelope of every message a client sends.
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// HandInput is one tracked hand in a frame.
type HandInput struct {
	Position [3]float32 `json:"position"`
	Grip     bool       `json:"grip"`
}

// HandsPayload is one tracking frame for both hands. Seq, when set, must
// grow; older frames are dropped.
type HandsPayload struct {
	Seq   uint64    `json:"seq,omitempty"`
	Left  HandInput `json:"left"`
	Right HandInput `json:"right"`
}

// ScenePayload asks for a scene change, for example a restart from the end
// screen.
type ScenePayload struct {
	Name string `json:"name"`
}
