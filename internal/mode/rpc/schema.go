// ABOUTME: Request/response schema types for the chat RPC methods
// ABOUTME: JSON-serializable params and results for respond, modes, status, and sessions

package rpc

import (
	"github.com/mauromedda/cognichat-go/internal/personality"
	"github.com/mauromedda/cognichat-go/pkg/chat"
)

// RespondParams are the params of the respond method. When History is
// present the call is stateless and the server conversation is untouched.
type RespondParams struct {
	Utterance string      `json:"utterance"`
	Mode      string      `json:"mode,omitempty"`
	History   []chat.Turn `json:"history,omitempty"`
	Trace     bool        `json:"trace,omitempty"`
}

// TransitionInfo reports a change of primary intent between user turns.
type TransitionInfo struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// RespondResult is the response payload for the respond method.
type RespondResult struct {
	Text        string          `json:"text"`
	Mode        chat.Mode       `json:"mode"`
	TemplateKey string          `json:"template_key"`
	Transition  *TransitionInfo `json:"transition,omitempty"`
	Trace       *chat.Trace     `json:"trace,omitempty"`
}

// ModeListResult is the response payload for the list_modes method.
type ModeListResult struct {
	Modes []personality.Info `json:"modes"`
}

// SetModeParams are the params of the set_mode method.
type SetModeParams struct {
	Mode string `json:"mode"`
}

// ModeResult is the response payload for the set_mode method.
type ModeResult struct {
	Mode chat.Mode `json:"mode"`
}

// StatusResult is the response payload for the get_status method.
type StatusResult struct {
	SessionID  string `json:"session_id"`
	Mode       string `json:"mode"`
	Turns      int    `json:"turns"`
	Intent     string `json:"intent,omitempty"`
	Persistent bool   `json:"persistent"`
}

// ResetResult is the response payload for the reset method.
type ResetResult struct {
	Cleared int `json:"cleared"`
}

// SessionInfo describes a stored session.
type SessionInfo struct {
	ID      string `json:"id"`
	Mode    string `json:"mode"`
	Created string `json:"created"`
}

// SessionListResult is the response payload for the list_sessions method.
type SessionListResult struct {
	Sessions []SessionInfo `json:"sessions"`
}
