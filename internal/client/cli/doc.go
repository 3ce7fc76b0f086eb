// Package cli is the interactive portfolio manager.
//
// NewApp wires configuration into a project source (sample data, the gRPC
// backend or an S3 bucket, optionally backed by a local snapshot cache), an
// owner profile provider and a manager.Manager. App.Run mounts the manager in
// the background and runs the REPL until the user exits.
//
// Commands: help, list, featured, show <id>, new, edit <id>,
// set <field> <value...>, draft, save, cancel, delete <id>, owner [<id|token>],
// reload, exit.
package cli
