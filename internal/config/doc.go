// Package config resolves the meshwire daemon configuration exactly once at
// process startup. It merges command-line arguments, an optional configuration
// file and built-in defaults into a single immutable Aggregate that the
// networking engine consumes.
//
// Resolution happens in four stages:
//
//  1. The option schema registry declares every recognized option, grouped by
//     functional domain (fscp, security, tap_adapter, switch), with its value
//     kind, default and required flag.
//  2. The source resolver picks at most one configuration file, preferring an
//     explicit path over the MESHWIRE_CONFIGURATION_FILE environment variable
//     over a fixed list of discovery paths. A missing file is a warning, not
//     an error.
//  3. The loader merges command-line values over file values over schema
//     defaults into a raw value set and enforces required options.
//  4. The assembler converts raw values into typed domain values (endpoints,
//     address prefixes, hardware addresses, durations, enumerations), loads
//     certificate and private-key material, and constructs the Aggregate.
//
// Every stage fails fast: the first error aborts resolution and no partially
// constructed configuration is ever visible to the caller.
//
// Precedence (highest to lowest):
//
//  1. Command-line arguments (--fscp.listen_on=0.0.0.0:12000)
//  2. Configuration file ([fscp] listen_on = "0.0.0.0:12000")
//  3. Schema defaults
//
// List-valued options (fscp.contact, security.authority_certificate_file)
// take all their tokens from the single highest-precedence source that
// supplied any; lists are never merged across sources.
package config
