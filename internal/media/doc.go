// Package media defines the movie metadata model shared between the
// Jellyfin client, the suggestion engine, and the store.
//
// MovieItem is an immutable per-scan snapshot of one library entry. Fields
// the server did not report stay at their zero value; classifiers treat a
// zero runtime or an empty genre list as "unknown" and skip the item rather
// than fabricating a label.
package media
