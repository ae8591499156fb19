package stellaclient

import "time"

// Video is one member-tagged video as served by the search endpoint.
type Video struct {
	ID              string       `json:"id"`
	ExternalVideoID string       `json:"externalVideoId"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	ChannelTitle    string       `json:"channelTitle"`
	ChannelID       string       `json:"channelId"`
	PublishedAt     time.Time    `json:"publishedAt"`
	DurationSeconds *int         `json:"durationSeconds,omitempty"`
	ViewCount       *int64       `json:"viewCount,omitempty"`
	LikeCount       *int64       `json:"likeCount,omitempty"`
	Tags            []string     `json:"tags"`
	IsOfficial      bool         `json:"isOfficial"`
	Members         []Appearance `json:"members"`
}

// Appearance tags one member as appearing in one video.
type Appearance struct {
	VideoID string `json:"videoId"`
	Member  string `json:"member"`
	Cohort  string `json:"cohort"`
}

// SearchResult is the search endpoint response.
type SearchResult struct {
	Videos []Video `json:"videos"`
	Total  int     `json:"total"`
}
