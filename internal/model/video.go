package model

import "time"

// VideoRecord is a persisted, member-tagged video.
//
// ExternalVideoID uniquely identifies the logical video at the source;
// re-ingesting the same ID updates the record instead of duplicating it.
// IsOfficial is classified once at conversion time from the official-channel
// allow-list and never recomputed implicitly.
type VideoRecord struct {
	ID              string             `json:"id"`
	ExternalVideoID string             `json:"externalVideoId"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	ChannelTitle    string             `json:"channelTitle"`
	ChannelID       string             `json:"channelId"`
	PublishedAt     time.Time          `json:"publishedAt"`
	DurationSeconds *int               `json:"durationSeconds,omitempty"`
	ViewCount       *int64             `json:"viewCount,omitempty"`
	LikeCount       *int64             `json:"likeCount,omitempty"`
	Tags            []string           `json:"tags"`
	IsOfficial      bool               `json:"isOfficial"`
	SourceQuery     string             `json:"sourceQuery,omitempty"`
	Members         []MemberAppearance `json:"members"`
}

// VideoInput is the converter's output: one normalized video ready for
// upsert, plus the members detected as appearing in it.
type VideoInput struct {
	ExternalVideoID string
	Title           string
	Description     string
	ChannelTitle    string
	ChannelID       string
	PublishedAt     time.Time
	DurationSeconds *int
	ViewCount       *int64
	LikeCount       *int64
	Tags            []string
	IsOfficial      bool
	SourceQuery     string
	Members         []string // canonical member names
}

// MemberAppearance is the many-to-many fact that a member appears in a video.
type MemberAppearance struct {
	VideoID string `json:"videoId"`
	Member  string `json:"member"`
	Cohort  string `json:"cohort"`
}

// SearchResult is the search endpoint response shape.
type SearchResult struct {
	Videos []VideoRecord `json:"videos"`
	Total  int           `json:"total"`
}

// IngestReport summarizes one ingestion batch. Individual defects never
// abort the batch; they are collected here instead.
type IngestReport struct {
	Query    string   `json:"query"`
	Fetched  int      `json:"fetched"`
	Upserted int      `json:"upserted"`
	Skipped  []string `json:"skipped,omitempty"`
	Tagged   int      `json:"tagged"`
}

// Stats is the /api/stats response.
type Stats struct {
	TotalVideos    int `json:"totalVideos"`
	OfficialVideos int `json:"officialVideos"`
	TotalMembers   int `json:"totalMembers"`
}
