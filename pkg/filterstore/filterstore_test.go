package filterstore

import (
	"net/url"
	"testing"

	"github.com/joonho0410/StellaClip-sub001/pkg/roster"
)

func TestSetCohortAll_ResetsMember(t *testing.T) {
	st := New(nil)
	if err := st.SetMember("RIN"); err != nil {
		t.Fatalf("SetMember(RIN): %v", err)
	}

	if err := st.SetCohort("ALL"); err != nil {
		t.Fatalf("SetCohort(ALL): %v", err)
	}

	sel := st.Selection()
	if sel.Cohort != roster.All || sel.Member != roster.All {
		t.Errorf("selection = %+v, want cohort=ALL member=ALL", sel)
	}
}

func TestSetMember_InfersCohort(t *testing.T) {
	st := New(nil)
	if err := st.SetMember("RIN"); err != nil {
		t.Fatalf("SetMember(RIN): %v", err)
	}

	sel := st.Selection()
	if sel.Member != "RIN" {
		t.Errorf("member = %s, want RIN", sel.Member)
	}
	if sel.Cohort != "CLICHE" {
		t.Errorf("cohort = %s, want CLICHE (RIN's owning cohort)", sel.Cohort)
	}
}

func TestSetMember_Unknown(t *testing.T) {
	st := New(nil)
	if err := st.SetMember("NOBODY"); err == nil {
		t.Fatal("SetMember(NOBODY) should fail")
	}
	if sel := st.Selection(); sel.Member != roster.All {
		t.Errorf("failed transition must not change state, member = %s", sel.Member)
	}
}

func TestSetCohort_KeepsMemberIfStillValid(t *testing.T) {
	st := New(nil)
	st.SetMember("RIN") // CLICHE

	if err := st.SetCohort("CLICHE"); err != nil {
		t.Fatalf("SetCohort(CLICHE): %v", err)
	}
	if sel := st.Selection(); sel.Member != "RIN" {
		t.Errorf("member = %s, want RIN kept (still valid for CLICHE)", sel.Member)
	}

	if err := st.SetCohort("MYSTIC"); err != nil {
		t.Fatalf("SetCohort(MYSTIC): %v", err)
	}
	if sel := st.Selection(); sel.Member != roster.All {
		t.Errorf("member = %s, want ALL (RIN is not in MYSTIC)", sel.Member)
	}
}

func TestTransitions_ResetPage(t *testing.T) {
	st := New(nil)
	st.SetPage(4)
	st.SetMember("HINA")
	if sel := st.Selection(); sel.Page != 1 {
		t.Errorf("page = %d, want 1 after member change", sel.Page)
	}
}

func TestURLSync_NoAllValues(t *testing.T) {
	var lastValues url.Values
	st := New(func(v url.Values) { lastValues = v })

	st.SetMember("RIN")
	st.SetCohort("ALL")

	for key, vals := range lastValues {
		for _, v := range vals {
			if v == roster.All || v == "" {
				t.Errorf("URL parameter %s=%q should have been deleted", key, v)
			}
		}
	}
	if lastValues.Has("cohort") || lastValues.Has("member") {
		t.Errorf("ALL selections must not appear in the URL: %v", lastValues)
	}
}

func TestURLSync_SetsConcreteValues(t *testing.T) {
	var lastValues url.Values
	st := New(func(v url.Values) { lastValues = v })

	st.SetMember("Mashiro")
	st.SetSort("views")
	st.SetPage(3)

	if got := lastValues.Get("member"); got != "MASHIRO" {
		t.Errorf("member param = %q, want MASHIRO", got)
	}
	if got := lastValues.Get("cohort"); got != "UNIVERSE" {
		t.Errorf("cohort param = %q, want UNIVERSE", got)
	}
	if got := lastValues.Get("sort"); got != "views" {
		t.Errorf("sort param = %q, want views", got)
	}
	if got := lastValues.Get("page"); got != "3" {
		t.Errorf("page param = %q, want 3", got)
	}
}

func TestQueryParams_FirstPageOmitted(t *testing.T) {
	values := QueryParams(DefaultSelection())
	if len(values) != 0 {
		t.Errorf("default selection should render an empty query, got %v", values)
	}
}

func TestFromQuery_RoundTrip(t *testing.T) {
	st := New(nil)
	st.SetMember("LIZE")
	st.SetSort("oldest")
	st.SetPage(2)

	hydrated := FromQuery(QueryParams(st.Selection()))
	if hydrated != st.Selection() {
		t.Errorf("round trip mismatch: %+v vs %+v", hydrated, st.Selection())
	}
}

func TestFromQuery_StellaAlias(t *testing.T) {
	values := url.Values{}
	values.Set("stella", "rin")

	sel := FromQuery(values)
	if sel.Member != "RIN" || sel.Cohort != "CLICHE" {
		t.Errorf("selection = %+v, want member=RIN cohort=CLICHE", sel)
	}
}

func TestFromQuery_InvalidValuesFallBack(t *testing.T) {
	values := url.Values{}
	values.Set("member", "nobody")
	values.Set("cohort", "GEN9")
	values.Set("sort", "random")
	values.Set("page", "-2")

	sel := FromQuery(values)
	if sel != DefaultSelection() {
		t.Errorf("selection = %+v, want defaults", sel)
	}
}
