// Package client talks to the authentication backend.
//
// Client is the transport-agnostic contract used by the auth service;
// GRPCClient implements it over gRPC with the JSON codec from package api.
// gRPC status codes are mapped to the sentinel errors in this package
// (ErrUnauthorized, ErrAlreadyExists, ErrUnavailable) or to a *RejectedError
// carrying the backend's message, so callers can match them with errors.Is
// and errors.As.
package client
