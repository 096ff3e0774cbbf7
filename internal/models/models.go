// package models defines the data model for the rotation planning pipeline
package models

import (
	"time"
)

// Song is one record from the Planning Center song catalog.
//
// Immutable once fetched; it lives for a single pipeline run.
type Song struct {
	ID              string
	Title           string
	Author          string
	LastScheduledAt *time.Time // nil when the song has never been scheduled
	Hidden          bool
}

// ScheduleRecord is one historical instance of a song being used in a service.
type ScheduleRecord struct {
	ServiceTypeName string
	PlanSortDate    time.Time
}

// ScheduleSummary is a song's recent usage history.
//
// TotalCount is the server-reported aggregate and may exceed len(Items);
// Items holds at most five records, most recent first.
type ScheduleSummary struct {
	TotalCount int
	Items      []ScheduleRecord
}

// EnrichedSong is a catalog song with its schedule history attached.
// Enrichment never mutates the source song fields.
type EnrichedSong struct {
	Song
	Schedules ScheduleSummary
}

// SongAttributes is the attributes object of a song resource in the
// Planning Center Services v2 JSON:API payload.
type SongAttributes struct {
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	LastScheduledAt *time.Time `json:"last_scheduled_at"`
	Hidden          bool       `json:"hidden"`
}

// SongResource represents one element of the songs response data array.
type SongResource struct {
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Attributes SongAttributes `json:"attributes"`
}

// PageLinks contains pagination links for a collection response.
type PageLinks struct {
	Self string  `json:"self"`
	Next *string `json:"next"`
}

// PageMeta contains collection counts for a paginated response.
type PageMeta struct {
	TotalCount int `json:"total_count"`
	Count      int `json:"count"`
}

// SongsResponse represents the songs collection payload.
type SongsResponse struct {
	Data  []SongResource `json:"data"`
	Links PageLinks      `json:"links"`
	Meta  PageMeta       `json:"meta"`
}

// ScheduleAttributes is the attributes object of a song_schedule resource.
type ScheduleAttributes struct {
	ServiceTypeName string    `json:"service_type_name"`
	PlanSortDate    time.Time `json:"plan_sort_date"`
}

// ScheduleResource represents one element of the song_schedules data array.
type ScheduleResource struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	Attributes ScheduleAttributes `json:"attributes"`
}

// SchedulesResponse represents the song_schedules collection payload.
type SchedulesResponse struct {
	Data []ScheduleResource `json:"data"`
	Meta PageMeta           `json:"meta"`
}

// ToSong maps a catalog resource to the domain model.
func (r SongResource) ToSong() Song {
	return Song{
		ID:              r.ID,
		Title:           r.Attributes.Title,
		Author:          r.Attributes.Author,
		LastScheduledAt: r.Attributes.LastScheduledAt,
		Hidden:          r.Attributes.Hidden,
	}
}

// ToSummary maps a schedules payload to the domain model, preserving the
// server-reported aggregate count and item order.
func (r SchedulesResponse) ToSummary() ScheduleSummary {
	summary := ScheduleSummary{TotalCount: r.Meta.TotalCount}
	for _, res := range r.Data {
		summary.Items = append(summary.Items, ScheduleRecord{
			ServiceTypeName: res.Attributes.ServiceTypeName,
			PlanSortDate:    res.Attributes.PlanSortDate,
		})
	}
	return summary
}
