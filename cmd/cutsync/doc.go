// Package main hosts the cutsync CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// reconciliation passes against the record database: diffing an EDL against
// the last imported cut, importing a new cut revision, listing stored shots
// and cuts, and configuration scaffolding. It centralizes configuration
// resolution and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
