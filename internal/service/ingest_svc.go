package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joonho0410/StellaClip-sub001/internal/model"
	"github.com/joonho0410/StellaClip-sub001/internal/repository"
	"github.com/joonho0410/StellaClip-sub001/internal/youtube"
	"github.com/joonho0410/StellaClip-sub001/pkg/duration"
	"github.com/joonho0410/StellaClip-sub001/pkg/roster"
)

// VideoSource fetches raw video resources for a search query.
type VideoSource interface {
	SearchVideos(ctx context.Context, query string, maxResults int) ([]youtube.VideoResource, error)
}

// IngestService converts raw API payloads into video records and persists
// them. One batch is single-threaded; concurrent batches are safe because
// the repository upsert is keyed and atomic per external video ID.
type IngestService struct {
	source      VideoSource
	repo        *repository.VideoRepo
	cache       *CacheService
	officialIDs map[string]bool
	maxResults  int
}

func NewIngestService(source VideoSource, repo *repository.VideoRepo, cache *CacheService, officialChannelIDs []string, maxResults int) *IngestService {
	official := make(map[string]bool, len(officialChannelIDs))
	for _, id := range officialChannelIDs {
		official[id] = true
	}
	return &IngestService{
		source:      source,
		repo:        repo,
		cache:       cache,
		officialIDs: official,
		maxResults:  maxResults,
	}
}

// Run fetches one query's worth of videos, converts them and upserts the
// results. Per-item defects are reported in the returned IngestReport, not
// raised; only fetch and storage failures abort the batch.
func (s *IngestService) Run(ctx context.Context, query string) (*model.IngestReport, error) {
	raw, err := s.source.SearchVideos(ctx, query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", query, err)
	}

	inputs, skipped := Convert(raw, s.officialIDs, query)

	report := &model.IngestReport{
		Query:   query,
		Fetched: len(raw),
		Skipped: skipped,
	}

	for _, in := range inputs {
		videoID, err := s.repo.Upsert(ctx, in)
		if err != nil {
			report.Skipped = append(report.Skipped,
				fmt.Sprintf("%s: upsert failed: %v", in.ExternalVideoID, err))
			continue
		}
		report.Upserted++

		if len(in.Members) > 0 {
			tagged, err := s.repo.TagAppearances(ctx, videoID, in.Members)
			if err != nil {
				report.Skipped = append(report.Skipped,
					fmt.Sprintf("%s: tagging failed: %v", in.ExternalVideoID, err))
				continue
			}
			report.Tagged += tagged
		}
	}

	if report.Upserted > 0 && s.cache != nil {
		if err := s.cache.InvalidateSearches(ctx); err != nil {
			log.Printf("ingest: cache invalidate error: %v", err)
		}
	}

	return report, nil
}

// Convert maps raw video resources into normalized inputs. A malformed
// item is skipped with a reason; a malformed duration only leaves the
// duration absent. An empty input yields an empty output.
func Convert(raw []youtube.VideoResource, officialChannelIDs map[string]bool, sourceQuery string) ([]model.VideoInput, []string) {
	inputs := make([]model.VideoInput, 0, len(raw))
	var skipped []string

	for _, item := range raw {
		if item.ID == "" {
			skipped = append(skipped, "item without video id")
			continue
		}
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("%s: bad publishedAt %q", item.ID, item.Snippet.PublishedAt))
			continue
		}

		in := model.VideoInput{
			ExternalVideoID: item.ID,
			Title:           item.Snippet.Title,
			Description:     item.Snippet.Description,
			ChannelTitle:    item.Snippet.ChannelTitle,
			ChannelID:       item.Snippet.ChannelID,
			PublishedAt:     publishedAt,
			Tags:            item.Snippet.Tags,
			IsOfficial:      officialChannelIDs[item.Snippet.ChannelID],
			SourceQuery:     sourceQuery,
			Members:         DetectMembers(item.Snippet.Title, item.Snippet.Description, item.Snippet.Tags),
		}
		if in.Tags == nil {
			in.Tags = []string{}
		}

		if secs, ok := duration.Parse(item.ContentDetails.Duration); ok {
			in.DurationSeconds = &secs
		}
		if n, err := strconv.ParseInt(item.Statistics.ViewCount, 10, 64); err == nil {
			in.ViewCount = &n
		}
		if n, err := strconv.ParseInt(item.Statistics.LikeCount, 10, 64); err == nil {
			in.LikeCount = &n
		}

		inputs = append(inputs, in)
	}

	return inputs, skipped
}

// DetectMembers scans a video's title, description and tags for member
// names, case-insensitively. Returns canonical names in roster order.
func DetectMembers(title, description string, tags []string) []string {
	haystack := roster.Canonical(title) + "\n" + roster.Canonical(description)
	for _, t := range tags {
		haystack += "\n" + roster.Canonical(t)
	}

	var members []string
	for _, m := range roster.AllMembers() {
		if strings.Contains(haystack, m) {
			members = append(members, m)
		}
	}
	return members
}
