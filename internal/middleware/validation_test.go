package middleware

import "testing"

func TestValidateMember_CaseVariants(t *testing.T) {
	for _, variant := range []string{"RIN", "rin", "Rin", " rin "} {
		got, errMsg := ValidateMember(variant)
		if errMsg != "" {
			t.Errorf("ValidateMember(%q) rejected: %s", variant, errMsg)
			continue
		}
		if got != "RIN" {
			t.Errorf("ValidateMember(%q) = %q, want RIN", variant, got)
		}
	}
}

func TestValidateMember_AllSentinelMeansNoFilter(t *testing.T) {
	for _, s := range []string{"", "ALL", "all"} {
		got, errMsg := ValidateMember(s)
		if got != "" || errMsg != "" {
			t.Errorf("ValidateMember(%q) = %q, %q, want no filter", s, got, errMsg)
		}
	}
}

func TestValidateMember_Unknown(t *testing.T) {
	if _, errMsg := ValidateMember("nobody"); errMsg == "" {
		t.Error("ValidateMember(nobody) should be rejected")
	}
}

func TestValidateCohort(t *testing.T) {
	got, errMsg := ValidateCohort("universe")
	if errMsg != "" || got != "UNIVERSE" {
		t.Errorf("ValidateCohort(universe) = %q, %q", got, errMsg)
	}
	if _, errMsg := ValidateCohort("GEN9"); errMsg == "" {
		t.Error("ValidateCohort(GEN9) should be rejected")
	}
	if got, errMsg := ValidateCohort("ALL"); got != "" || errMsg != "" {
		t.Errorf("ValidateCohort(ALL) = %q, %q, want no filter", got, errMsg)
	}
}

func TestValidateSort(t *testing.T) {
	for _, s := range []string{"date", "oldest", "views", "likes"} {
		if _, errMsg := ValidateSort(s); errMsg != "" {
			t.Errorf("ValidateSort(%q) rejected: %s", s, errMsg)
		}
	}
	if _, errMsg := ValidateSort("random"); errMsg == "" {
		t.Error("ValidateSort(random) should be rejected")
	}
	if got, errMsg := ValidateSort(""); got != "" || errMsg != "" {
		t.Error("empty sort should mean default ordering")
	}
}

func TestValidateLimitOffset(t *testing.T) {
	limit, offset, errMsg := ValidateLimitOffset("5", "10")
	if errMsg != "" || limit != 5 || offset != 10 {
		t.Errorf("ValidateLimitOffset(5,10) = %d, %d, %q", limit, offset, errMsg)
	}

	limit, offset, errMsg = ValidateLimitOffset("", "")
	if errMsg != "" || limit != DefaultLimit || offset != 0 {
		t.Errorf("defaults = %d, %d, %q", limit, offset, errMsg)
	}

	limit, _, _ = ValidateLimitOffset("500", "")
	if limit != MaxLimit {
		t.Errorf("limit should clamp to %d, got %d", MaxLimit, limit)
	}

	if _, _, errMsg := ValidateLimitOffset("-1", ""); errMsg == "" {
		t.Error("negative limit should be rejected")
	}
	if _, _, errMsg := ValidateLimitOffset("", "-3"); errMsg == "" {
		t.Error("negative offset should be rejected")
	}
	if _, _, errMsg := ValidateLimitOffset("abc", ""); errMsg == "" {
		t.Error("non-numeric limit should be rejected")
	}
}

func TestValidateVideoID(t *testing.T) {
	got, errMsg := ValidateVideoID("dQw4w9WgXcQ")
	if errMsg != "" || got != "dQw4w9WgXcQ" {
		t.Errorf("ValidateVideoID = %q, %q", got, errMsg)
	}
	if _, errMsg := ValidateVideoID(""); errMsg == "" {
		t.Error("empty videoId should be rejected")
	}
	if _, errMsg := ValidateVideoID("bad/id!"); errMsg == "" {
		t.Error("videoId with invalid characters should be rejected")
	}
	if _, errMsg := ValidateVideoID("waytoolongvideoid12345"); errMsg == "" {
		t.Error("overlong videoId should be rejected")
	}
}

func TestValidateIngestQuery(t *testing.T) {
	if _, errMsg := ValidateIngestQuery("  "); errMsg == "" {
		t.Error("blank query should be rejected")
	}
	got, errMsg := ValidateIngestQuery(" stellive clips ")
	if errMsg != "" || got != "stellive clips" {
		t.Errorf("ValidateIngestQuery = %q, %q", got, errMsg)
	}
}
