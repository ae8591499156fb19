package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/joonho0410/StellaClip-sub001/internal/middleware"
	"github.com/joonho0410/StellaClip-sub001/internal/repository"
	"github.com/joonho0410/StellaClip-sub001/internal/service"
)

type VideoHandler struct {
	svc *service.VideoService
}

func NewVideoHandler(svc *service.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Search handles GET /api/videos?cohort=&member=&sort=&limit=&offset=
// The `stella` query parameter is an accepted alias for `member`.
func (h *VideoHandler) Search(c fiber.Ctx) error {
	memberParam := fiber.Query[string](c, "member")
	if memberParam == "" {
		memberParam = fiber.Query[string](c, "stella")
	}

	member, errMsg := middleware.ValidateMember(memberParam)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_MEMBER", errMsg)
	}

	cohort, errMsg := middleware.ValidateCohort(fiber.Query[string](c, "cohort"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_COHORT", errMsg)
	}

	sort, errMsg := middleware.ValidateSort(fiber.Query[string](c, "sort"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SORT", errMsg)
	}

	limit, offset, errMsg := middleware.ValidateLimitOffset(
		fiber.Query[string](c, "limit"), fiber.Query[string](c, "offset"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PAGINATION", errMsg)
	}

	filter := repository.SearchFilter{
		Member: member,
		Cohort: cohort,
		Sort:   sort,
		Limit:  limit,
		Offset: offset,
	}
	if official := fiber.Query[string](c, "official"); official != "" {
		isOfficial := official == "true" || official == "1"
		filter.IsOfficial = &isOfficial
	}

	result, fromCache, err := h.svc.Search(c.Context(), filter)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search videos")
	}

	if fromCache {
		Metrics.CacheHits.Inc()
	} else {
		Metrics.CacheMisses.Inc()
	}

	return c.JSON(result)
}

// Appearances handles GET /api/videos/:videoId/appearances
func (h *VideoHandler) Appearances(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_VIDEO_ID", errMsg)
	}

	apps, err := h.svc.Appearances(c.Context(), videoID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to lookup appearances")
	}

	return c.JSON(apps)
}
