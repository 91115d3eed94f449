// Package server runs the sync server's transports.
//
// The HTTP and gRPC servers run in one errgroup. Cancelling the context, or
// a failing server, stops both gracefully.
package server
