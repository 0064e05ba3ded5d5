// Package jellyfin implements the thin HTTP client curator uses to read the
// movie library and create collections on a Jellyfin server.
//
// Authentication uses the X-Emby-Token header. Only the endpoints curator
// needs are covered: listing movies with the metadata fields the suggestion
// engine inspects, creating a collection, and adding items to one.
package jellyfin
