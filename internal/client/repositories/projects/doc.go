// Package projects contains the sources an owner's initial project collection
// can be fetched from: a simulated backend with sample data, an S3 bucket, a
// local SQLite snapshot, and an online/offline decorator combining a remote
// source with the snapshot. The gRPC backend client lives in package client.
package projects
