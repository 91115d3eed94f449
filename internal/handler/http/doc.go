// Package http implements the REST transport of the sync server.
//
// It exposes the owner's remote states under /api/states, a health check
// and the build version, and serves Prometheus metrics on /metrics.
// Authentication, request tracing, access logging, compression and body
// signature checks are handled here before requests reach the service layer.
package http
