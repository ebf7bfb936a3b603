// ABOUTME: RPC request/response envelope types for the JSONL chat protocol
// ABOUTME: Params stay raw so each handler decodes its own shape

package rpc

import "encoding/json"

// Request represents an RPC request from an external client.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response represents an RPC response to an external client.
type Response struct {
	ID     string `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// Error represents an RPC error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Methods
const (
	MethodRespond      = "respond"
	MethodListModes    = "list_modes"
	MethodSetMode      = "set_mode"
	MethodGetStatus    = "get_status"
	MethodReset        = "reset"
	MethodListSessions = "list_sessions"
)
