// Package config loads the portfolio manager's settings.
//
// Sources, in increasing precedence:
//
//  1. Built-in defaults (LoadDefaults).
//  2. A JSON file named by -c or -config (see JsonConfig for keys).
//  3. Command-line flags (see parseFlags).
//
// Example file:
//
//	{
//	  "repository": "grpc",
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "5s",
//	  "cache_path": ".gophfolio/snapshots.db",
//	  "owner_id": "demo-owner"
//	}
package config
