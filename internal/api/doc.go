// Package api is the wire contract between the GophGate client and the
// authentication backend.
//
// The service is plain gRPC. Messages are Go structs encoded as JSON by a codec
// registered under the "json" content-subtype, so no protoc step is involved:
// the service descriptor and client stub that protoc-gen-go-grpc would emit are
// written out by hand in service.go.
//
// Methods
//
//	Register  name, email, password  -> user + access token
//	Login     email, password        -> user + access token
//	Profile   (access_token header)  -> user
//	Ping                             -> status
package api
