// Package models holds the domain types flowing through the rotation pipeline
// and the JSON:API envelope types for the Planning Center Services v2 API.
//
// # Domain Types
//
// [Song] comes from the catalog, [EnrichedSong] is a Song with a
// [ScheduleSummary] attached. Enrichment carries the original song fields
// through unchanged.
//
// # API Mappings
//
// Planning Center responses nest attributes per JSON:API. [SongResource.ToSong]
// and [SchedulesResponse.ToSummary] flatten them into domain types at the
// services boundary so the pipeline never sees wire shapes.
package models
