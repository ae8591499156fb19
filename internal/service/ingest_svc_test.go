package service

import (
	"testing"

	"github.com/joonho0410/StellaClip-sub001/internal/youtube"
)

func resource(id, title, channelID, duration string) youtube.VideoResource {
	return youtube.VideoResource{
		ID: id,
		Snippet: youtube.Snippet{
			Title:        title,
			ChannelID:    channelID,
			ChannelTitle: "some channel",
			PublishedAt:  "2024-03-01T12:00:00Z",
		},
		ContentDetails: youtube.ContentDetails{Duration: duration},
		Statistics:     youtube.Statistics{ViewCount: "1200", LikeCount: "34"},
	}
}

func TestConvert_OfficialClassification(t *testing.T) {
	official := map[string]bool{"UCofficial": true}
	raw := []youtube.VideoResource{
		resource("vid1", "clip", "UCofficial", "PT4M13S"),
		resource("vid2", "clip", "UCfan", "PT4M13S"),
	}

	inputs, skipped := Convert(raw, official, "stellive")
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}
	if !inputs[0].IsOfficial {
		t.Error("allow-listed channel should classify as official")
	}
	if inputs[1].IsOfficial {
		t.Error("unknown channel should not classify as official")
	}
	if inputs[0].SourceQuery != "stellive" {
		t.Errorf("sourceQuery = %q, want stellive", inputs[0].SourceQuery)
	}
}

func TestConvert_MalformedDurationIsAbsentNotFatal(t *testing.T) {
	raw := []youtube.VideoResource{resource("vid1", "clip", "UCfan", "not-a-duration")}

	inputs, skipped := Convert(raw, nil, "q")
	if len(inputs) != 1 {
		t.Fatalf("item with bad duration must still convert, got %d items (skipped %v)", len(inputs), skipped)
	}
	if inputs[0].DurationSeconds != nil {
		t.Errorf("durationSeconds = %d, want absent", *inputs[0].DurationSeconds)
	}
}

func TestConvert_DurationAndStatistics(t *testing.T) {
	raw := []youtube.VideoResource{resource("vid1", "clip", "UCfan", "PT1H30M45S")}

	inputs, _ := Convert(raw, nil, "q")
	if inputs[0].DurationSeconds == nil || *inputs[0].DurationSeconds != 5445 {
		t.Errorf("durationSeconds = %v, want 5445", inputs[0].DurationSeconds)
	}
	if inputs[0].ViewCount == nil || *inputs[0].ViewCount != 1200 {
		t.Errorf("viewCount = %v, want 1200", inputs[0].ViewCount)
	}
	if inputs[0].LikeCount == nil || *inputs[0].LikeCount != 34 {
		t.Errorf("likeCount = %v, want 34", inputs[0].LikeCount)
	}
}

func TestConvert_AbsentStatisticsStayAbsent(t *testing.T) {
	raw := []youtube.VideoResource{{
		ID: "vid1",
		Snippet: youtube.Snippet{
			Title:       "clip",
			PublishedAt: "2024-03-01T12:00:00Z",
		},
	}}

	inputs, _ := Convert(raw, nil, "q")
	if inputs[0].ViewCount != nil || inputs[0].LikeCount != nil {
		t.Error("empty statistics strings must convert to absent counts")
	}
}

func TestConvert_EmptyInputYieldsEmptyOutput(t *testing.T) {
	inputs, skipped := Convert(nil, nil, "q")
	if len(inputs) != 0 || len(skipped) != 0 {
		t.Errorf("Convert(nil) = %d inputs, %d skips, want 0, 0", len(inputs), len(skipped))
	}
}

func TestConvert_SkipsItemsWithoutID(t *testing.T) {
	raw := []youtube.VideoResource{
		{Snippet: youtube.Snippet{Title: "no id", PublishedAt: "2024-03-01T12:00:00Z"}},
		resource("vid2", "ok", "UCfan", "PT10M"),
	}

	inputs, skipped := Convert(raw, nil, "q")
	if len(inputs) != 1 || inputs[0].ExternalVideoID != "vid2" {
		t.Fatalf("defective item must not abort the batch: inputs=%v", inputs)
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %v, want one entry", skipped)
	}
}

func TestConvert_SkipsBadPublishedAt(t *testing.T) {
	raw := []youtube.VideoResource{{
		ID:      "vid1",
		Snippet: youtube.Snippet{Title: "clip", PublishedAt: "yesterday"},
	}}

	inputs, skipped := Convert(raw, nil, "q")
	if len(inputs) != 0 || len(skipped) != 1 {
		t.Errorf("bad publishedAt should skip the item: %d inputs, %v", len(inputs), skipped)
	}
}

func TestDetectMembers_TitleCaseInsensitive(t *testing.T) {
	members := DetectMembers("rin sings a ballad", "", nil)
	if len(members) != 1 || members[0] != "RIN" {
		t.Errorf("DetectMembers = %v, want [RIN]", members)
	}
}

func TestDetectMembers_TagsAndDescription(t *testing.T) {
	members := DetectMembers("weekly clip", "with Mashiro today", []string{"kanna"})
	want := map[string]bool{"KANNA": true, "MASHIRO": true}
	if len(members) != len(want) {
		t.Fatalf("DetectMembers = %v, want KANNA and MASHIRO", members)
	}
	for _, m := range members {
		if !want[m] {
			t.Errorf("unexpected member %s", m)
		}
	}
}

func TestDetectMembers_NoMatch(t *testing.T) {
	if members := DetectMembers("unrelated video", "nothing here", nil); len(members) != 0 {
		t.Errorf("DetectMembers = %v, want none", members)
	}
}
