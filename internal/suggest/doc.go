// Package suggest implements the collection suggestion engine.
//
// The engine takes the movie snapshot from one library scan and produces a
// deduplicated list of scored Suggestions: franchise collections derived
// from keyword rules and sequel title patterns, studio groupings, and
// format/length/audience/mood pseudo-tags. Every decision is a deterministic
// rule or threshold; two runs over the same snapshot produce byte-identical
// suggestion sets apart from timestamps.
//
// The Assembler is the only entry point callers need. Individual helpers
// (Normalize, BaseKey, GroupFranchises, SelectStudios, the per-item label
// functions) are exported for targeted testing and reuse.
//
// The engine performs no I/O. Persistence and the media server belong to
// the store and services/jellyfin packages.
package suggest
