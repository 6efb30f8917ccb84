// Package config provides configuration loading, merging, and validation
// facilities for the sync client and the task service.
//
// Configuration is assembled from multiple sources in the following order.
// Values are merged with mergo, so a field already set by an earlier source
// is kept and later sources only fill zero fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetClientConfig] for the sync client and
// [GetServerConfig] for the task service. Both build on [GetStructuredConfig].
package config
