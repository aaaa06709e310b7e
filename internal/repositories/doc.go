// Package repositories provides the persistence layer over the SQLite
// store.
//
// Each repository wraps a [database/sql] handle for one aggregate:
//   - [ArtistRepository] : read-only catalog queries over artists,
//     albums, and per-artist track listings
//   - [TrackRepository] : track lookups by id
//   - [PlaylistRepository] : playlists, user associations, and track
//     membership rows (the write surface of the domain service)
//   - [UserRepository] : user lookups
//
// Repositories report absence with (nil, nil) rather than an error;
// translating absence into domain errors is the services' job. All
// multi-row writes run inside a transaction.
package repositories
