// Package comcfg provides the configuration loader for a LoLa-based
// shared-memory IPC middleware. It materializes a strongly typed, immutable
// in-memory configuration model from a binary, FlatBuffers-encoded
// configuration file.
//
// The loader is a synchronous load-verify-translate pipeline:
//
//  1. Memory-map the configuration file (zero-copy, read-only).
//  2. Structurally verify the buffer against the comconfig schema before any
//     field is read.
//  3. Translate each schema subtree into normalized domain objects: the
//     service-type catalog, the service-instance catalog, global settings and
//     tracing settings, enforcing the semantic invariants the schema alone
//     cannot express (required fields, unique registrations, exactly one
//     supported transport binding per entry).
//  4. Assemble the four results into one immutable Configuration value and
//     release the mapping.
//
// Either the pipeline yields a fully validated configuration or it fails with
// a structured error; no partial configuration is ever observable.
//
// # Quick Start
//
//	import "github.com/lola-ipc/comcfg/pkg/configuration"
//
//	cfg, err := configuration.Load("/etc/mw_com_config.fb")
//	if err != nil {
//	    // io, schema or semantic error; see pkg/cfgerrors
//	}
//	for id, deployment := range cfg.ServiceTypes {
//	    ...
//	}
//
// Middleware processes that must not start on an invalid configuration use
// configuration.MustLoad, which logs the diagnostic and terminates.
//
// # Key Packages
//
//	pkg/configuration - domain model, translators and the Load pipeline
//	pkg/schema        - structural FlatBuffers verification
//	pkg/schema/fb     - generated schema accessors (flatc output)
//	pkg/mmap          - read-only memory-mapped file regions
//	pkg/cfgerrors     - structured error handling
//	pkg/logger        - structured logging (zap)
//
// The binary schema contract lives in schema/comconfig.fbs; the companion
// tooling that compiles human-authored JSON into that binary form is a
// separate build-time concern and not part of this module.
package comcfg
