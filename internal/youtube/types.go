package youtube

// VideoResource is one video item from the Data API v3 `videos` endpoint
// with snippet, contentDetails and statistics parts.
type VideoResource struct {
	ID             string         `json:"id"`
	Snippet        Snippet        `json:"snippet"`
	ContentDetails ContentDetails `json:"contentDetails"`
	Statistics     Statistics     `json:"statistics"`
}

// Snippet holds the descriptive metadata of a video.
type Snippet struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ChannelID    string   `json:"channelId"`
	ChannelTitle string   `json:"channelTitle"`
	PublishedAt  string   `json:"publishedAt"`
	Tags         []string `json:"tags"`
}

// ContentDetails carries the ISO 8601 duration code.
type ContentDetails struct {
	Duration string `json:"duration"`
}

// Statistics counts are strings on the wire; absent fields stay empty.
type Statistics struct {
	ViewCount string `json:"viewCount"`
	LikeCount string `json:"likeCount"`
}

// --- private response envelopes ---

type videosResponse struct {
	Items []VideoResource `json:"items"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}
