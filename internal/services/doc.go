// Package services defines the [Service] interface for song scheduling
// providers and implements it for Planning Center Services.
//
// # Service Interface
//
// The pipeline depends on two capabilities: listing the song catalog and
// fetching one song's recent schedule history. Both are exposed through
// [Service] so the engine can be tested against doubles.
//
// # Planning Center Implementation
//
// [PlanningCenterService] speaks the Services v2 JSON:API. Authentication is
// a personal access token pair (app id + secret) sent as HTTP Basic
// credentials with Content-Type: application/json on every request.
//
// [PlanningCenterService.SongSchedules] returns the raw response body next to
// the parsed summary; the enricher caches the raw text and replays it through
// [ParseSchedules] on later calls within the session.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrMissingCredentials] : app id or secret absent
//   - [shared.ErrCatalogFetch] : catalog request failed (fatal to a run)
//   - [shared.ErrAPIRequest] : non-2xx response
//
// # Artist Queries
//
// [MapAuthorsToArtistQuery] is a pure helper that turns free-text author
// credits into a "{title} {artist}" search query using an ordered rule list;
// it sits outside the pipeline.
package services
