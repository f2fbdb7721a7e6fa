// Package model contains the client-side domain records for SmartDoc.
// These are pure data shapes shared across layers (transport, conversion, CLI)
// with no coupling to the wire or to any UI.
package model

// Response is the uniform envelope returned by every transport call.
// Success=true implies Data is present; Success=false implies Error is non-empty.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Ok wraps a payload in a positive Response.
func Ok[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: &data}
}

// Fail wraps an error string in a negative Response.
func Fail[T any](msg string) Response[T] {
	return Response[T]{Success: false, Error: msg}
}
