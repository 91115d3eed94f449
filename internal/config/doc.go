// Package config provides configuration loading, merging, and validation
// for the sync client and the sync server.
//
// Configuration is assembled from multiple sources. For every field the
// first source that sets it wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The entry points are [GetClientConfig] and [GetServerConfig], which build
// role-specific views on top of [GetStructuredConfig].
package config
