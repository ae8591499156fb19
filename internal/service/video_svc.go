package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/joonho0410/StellaClip-sub001/internal/model"
	"github.com/joonho0410/StellaClip-sub001/internal/repository"
	"github.com/joonho0410/StellaClip-sub001/pkg/roster"
)

type VideoService struct {
	repo       *repository.VideoRepo
	memberRepo *repository.MemberRepo
	cache      *CacheService
}

func NewVideoService(repo *repository.VideoRepo, memberRepo *repository.MemberRepo, cache *CacheService) *VideoService {
	return &VideoService{repo: repo, memberRepo: memberRepo, cache: cache}
}

// FilterKey canonicalizes a search filter into the cache key. The same
// shape drives the client-side coordinator, so the two caches agree on
// what "one page" means.
func FilterKey(f repository.SearchFilter) string {
	official := ""
	if f.IsOfficial != nil {
		official = fmt.Sprintf("%t", *f.IsOfficial)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%d|%d", f.Cohort, f.Member, f.Sort, official, f.Limit, f.Offset)
}

// Search runs a filtered, paginated video search with cache-aside.
// Member names are matched case-insensitively: any casing variant is
// canonicalized before touching storage. fromCache reports whether the
// result was served from Redis.
func (s *VideoService) Search(ctx context.Context, f repository.SearchFilter) (*model.SearchResult, bool, error) {
	f.Member = canonicalOrEmpty(f.Member)
	f.Cohort = canonicalOrEmpty(f.Cohort)

	key := FilterKey(f)
	if s.cache != nil {
		cached, err := s.cache.GetSearch(ctx, key)
		if err != nil {
			log.Printf("cache: search get error: %v", err)
		} else if cached != nil {
			var res model.SearchResult
			if err := json.Unmarshal(cached, &res); err == nil {
				return &res, true, nil
			}
		}
	}

	videos, total, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, false, err
	}
	if videos == nil {
		videos = []model.VideoRecord{}
	}

	res := &model.SearchResult{Videos: videos, Total: total}

	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, key, res); err != nil {
			log.Printf("cache: search set error: %v", err)
		}
	}

	return res, false, nil
}

// Appearances is the reverse tag lookup for one video.
func (s *VideoService) Appearances(ctx context.Context, videoID string) ([]model.MemberAppearance, error) {
	apps, err := s.repo.FindAppearancesByVideoID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []model.MemberAppearance{}
	}
	return apps, nil
}

// Stats returns the aggregate counts for /api/stats.
func (s *VideoService) Stats(ctx context.Context) (*model.Stats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	official, err := s.repo.CountOfficial(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Stats{
		TotalVideos:    total,
		OfficialVideos: official,
		TotalMembers:   members,
	}, nil
}

// Reclassify applies a new official-channel allow-list to stored records.
func (s *VideoService) Reclassify(ctx context.Context, officialIDs []string) (int64, error) {
	changed, err := s.repo.ReclassifyOfficial(ctx, officialIDs)
	if err != nil {
		return 0, err
	}
	if changed > 0 && s.cache != nil {
		if err := s.cache.InvalidateSearches(ctx); err != nil {
			log.Printf("cache: invalidate after reclassify: %v", err)
		}
	}
	return changed, nil
}

func canonicalOrEmpty(s string) string {
	c := roster.Canonical(s)
	if c == "" || c == roster.All {
		return ""
	}
	return c
}
