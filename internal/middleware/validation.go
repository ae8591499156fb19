package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/joonho0410/StellaClip-sub001/pkg/roster"
)

// Query boundary limits. External strings are never trusted as domain
// values before passing these checks.
const (
	MaxVideoIDLen = 16  // YouTube video IDs are 11 chars; headroom for other services
	MaxQueryLen   = 128 // ingest query strings
	MaxLimit      = 50
	DefaultLimit  = 12
)

// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// sortValues enumerates the accepted sort names.
var sortValues = map[string]bool{
	"date":   true,
	"oldest": true,
	"views":  true,
	"likes":  true,
}

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateMember canonicalizes and checks a member filter value. Empty and
// the ALL sentinel mean "no filter" and come back as "".
func ValidateMember(s string) (string, string) {
	m := roster.Canonical(s)
	if m == "" || m == roster.All {
		return "", ""
	}
	if !roster.IsValidMember(m) {
		return "", "unknown member: " + s
	}
	return m, ""
}

// ValidateCohort canonicalizes and checks a cohort filter value.
func ValidateCohort(s string) (string, string) {
	cohort := roster.Canonical(s)
	if cohort == "" || cohort == roster.All {
		return "", ""
	}
	if !roster.IsValidCohort(cohort) {
		return "", "unknown cohort: " + s
	}
	return cohort, ""
}

// ValidateSort checks a sort name; empty means the default ordering.
func ValidateSort(s string) (string, string) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", ""
	}
	if !sortValues[s] {
		return "", "sort must be one of date, oldest, views, likes"
	}
	return s, ""
}

// ValidateLimitOffset parses pagination parameters. Both must be
// non-negative; limit is clamped to MaxLimit and defaults when absent.
func ValidateLimitOffset(limitStr, offsetStr string) (limit, offset int, errMsg string) {
	limit = DefaultLimit
	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			return 0, 0, "limit must be a non-negative integer"
		}
		limit = min(n, MaxLimit)
	}

	if offsetStr != "" {
		n, err := strconv.Atoi(offsetStr)
		if err != nil || n < 0 {
			return 0, 0, "offset must be a non-negative integer"
		}
		offset = n
	}

	return limit, offset, ""
}

// ValidateVideoID checks that a video ID is well-formed.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId must be at most 16 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateIngestQuery checks an admin-supplied ingestion query.
func ValidateIngestQuery(q string) (string, string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", "query is required"
	}
	if len(q) > MaxQueryLen {
		return "", "query must be at most 128 characters"
	}
	return q, ""
}
