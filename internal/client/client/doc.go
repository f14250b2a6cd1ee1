// Package client talks to the profilesync server.
//
// GRPCClient manages the connection, attaches the access token to every
// call (unary and streaming) and maps gRPC status codes to sentinel errors
// that callers can match with errors.Is: ErrUnauthorized, ErrUnavailable,
// ErrInvalidArgument, common.ErrNotFound and common.ErrBusy.
//
// CreateProfile and ReplaceImage consume the server's progress stream and
// hand every progress value to the caller before returning the result.
package client
