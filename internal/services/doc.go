// Package services implements the domain layer between the presentation
// surfaces (CLI, TUI) and the repositories.
//
// [ArtistService] serves read-only catalog browsing. [PlaylistService]
// owns every mutation of playlists and their membership, and enforces
// the invariants the store does not:
//
//   - at most one playlist named [models.FavoritesPlaylistName] per
//     user, created implicitly on the first favorite
//   - playlist ids assigned as max(existing)+1 under a serialized scan
//   - duplicate favorites and duplicate playlist memberships rejected
//     as conflicts, while removing an absent membership stays a no-op
//
// Failures are classified by the sentinel errors in internal/shared:
// validation errors surface before any store access, not-found and
// conflict errors carry the offending id or name in their message, and
// anything else is a store failure wrapped verbatim.
package services
