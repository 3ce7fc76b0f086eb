// Package client talks to the portfolio backend and opens the local snapshot
// database.
//
// GRPCClient implements projects.Repository over the ProjectService gRPC
// API. Every call carries a fresh request id in its metadata, and transport
// failures are mapped to ErrUnavailable so callers can fall back to a cached
// snapshot. OpenDatabase opens (creating if needed) the SQLite file used for
// those snapshots and applies the embedded migrations.
package client
