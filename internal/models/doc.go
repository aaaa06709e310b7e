// Package models defines domain entities for the Chinook playlist and
// favorites service.
//
// The package contains two categories of types:
//
// 1. Persisted entities, owned by the relational store:
//   - [Artist] : recording artists, 1:N with albums
//   - [Album] : albums, each belonging to one artist
//   - [Track] : recordings, optionally belonging to an album
//   - [Playlist] : named track sets (N:N membership via join rows)
//   - [UserPlaylist] : user-to-playlist association rows
//   - [User] : accounts (authentication is out of scope)
//
// 2. Derived row shapes returned by queries:
//   - [TrackDetail] : a track joined with its album and artist names,
//     consumed by the views package when building client-facing shapes
//
// The reserved [FavoritesPlaylistName] identifies each user's singleton
// favorites playlist. Nothing in the schema enforces that singleton; the
// services package does.
package models
