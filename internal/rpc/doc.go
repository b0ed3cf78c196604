// Package rpc defines the wire contract between the homeledger client and
// server. Messages are plain Go structs encoded with encoding/json; the
// codec is registered with gRPC under the "json" content-subtype, and the
// service descriptor is maintained by hand in desc.go.
package rpc
