// Package filterstore holds the client-resident filter selection and keeps
// it synchronized with a URL query string.
//
// The store is an explicit state container: transitions are pure updates to
// the Selection plus a single side effect, the URL sync callback, invoked
// after every transition. There are no package-level singletons; callers
// construct a Store and pass it where it is needed.
package filterstore

import (
	"net/url"
	"strconv"
	"sync"

	"github.com/joonho0410/StellaClip-sub001/pkg/roster"
)

// DefaultPerPage is the page size used when the caller does not choose one.
const DefaultPerPage = 12

// Selection is the active cohort/member/sort/page choice.
// Cohort and Member hold canonical names or the roster.All sentinel.
type Selection struct {
	Cohort  string
	Member  string
	Sort    string
	Page    int
	PerPage int
}

// DefaultSelection is the unfiltered first page.
func DefaultSelection() Selection {
	return Selection{
		Cohort:  roster.All,
		Member:  roster.All,
		Page:    1,
		PerPage: DefaultPerPage,
	}
}

// paramBinding maps one Selection field onto one query parameter. The rule
// is uniform: an empty string deletes the parameter, anything else sets it.
// This enumerated table replaces reflection over field names.
type paramBinding struct {
	name  string
	value func(Selection) string
}

var paramBindings = []paramBinding{
	{"cohort", func(s Selection) string { return blankIfAll(s.Cohort) }},
	{"member", func(s Selection) string { return blankIfAll(s.Member) }},
	{"sort", func(s Selection) string { return s.Sort }},
	{"page", func(s Selection) string {
		if s.Page <= 1 {
			return ""
		}
		return strconv.Itoa(s.Page)
	}},
}

func blankIfAll(v string) string {
	if v == roster.All {
		return ""
	}
	return v
}

// QueryParams renders a selection as URL query parameters. Fields at their
// no-filter value (ALL sentinel, empty sort, first page) are omitted, which
// keeps shared URLs minimal.
func QueryParams(s Selection) url.Values {
	values := url.Values{}
	for _, b := range paramBindings {
		if v := b.value(s); v != "" {
			values.Set(b.name, v)
		}
	}
	return values
}

// FromQuery hydrates a selection from URL query parameters, e.g. when a
// shared link is opened. Invalid values fall back to defaults; a member
// implies its owning cohort. The `stella` parameter is an accepted alias
// for `member`.
func FromQuery(values url.Values) Selection {
	s := DefaultSelection()

	if cohort := roster.Canonical(values.Get("cohort")); roster.IsValidCohort(cohort) {
		s.Cohort = cohort
	}

	memberParam := values.Get("member")
	if memberParam == "" {
		memberParam = values.Get("stella")
	}
	if member := roster.Canonical(memberParam); roster.IsValidMember(member) {
		s.Member = member
		if cohort, err := roster.CohortOf(member); err == nil {
			s.Cohort = cohort
		}
	}

	switch sort := values.Get("sort"); sort {
	case "date", "oldest", "views", "likes":
		s.Sort = sort
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		s.Page = page
	}

	return s
}

// URLSync receives the full parameter set after each transition and writes
// it wherever the address bar lives (history API, test buffer, ...).
type URLSync func(url.Values)

// Store is the filter state container.
type Store struct {
	mu   sync.Mutex
	sel  Selection
	sync URLSync
}

// New creates a store at the default selection. syncFn may be nil when no
// URL mirroring is wanted.
func New(syncFn URLSync) *Store {
	return &Store{sel: DefaultSelection(), sync: syncFn}
}

// NewFromQuery creates a store hydrated from an existing query string.
func NewFromQuery(values url.Values, syncFn URLSync) *Store {
	return &Store{sel: FromQuery(values), sync: syncFn}
}

// Selection returns the current selection.
func (st *Store) Selection() Selection {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sel
}

// SetCohort selects a cohort. Selecting ALL resets the member to ALL; a
// concrete cohort keeps the member only if it belongs to that cohort.
func (st *Store) SetCohort(cohort string) error {
	cohort = roster.Canonical(cohort)
	if cohort != roster.All && !roster.IsValidCohort(cohort) {
		return roster.ErrUnknownCohort
	}

	st.transition(func(s *Selection) {
		s.Cohort = cohort
		if cohort == roster.All {
			s.Member = roster.All
		} else if s.Member != roster.All {
			if owner, err := roster.CohortOf(s.Member); err != nil || owner != cohort {
				s.Member = roster.All
			}
		}
		s.Page = 1
	})
	return nil
}

// SetMember selects a member; the owning cohort is inferred. Selecting ALL
// keeps the current cohort.
func (st *Store) SetMember(member string) error {
	member = roster.Canonical(member)
	if member == roster.All {
		st.transition(func(s *Selection) {
			s.Member = roster.All
			s.Page = 1
		})
		return nil
	}

	cohort, err := roster.CohortOf(member)
	if err != nil {
		return err
	}

	st.transition(func(s *Selection) {
		s.Member = member
		s.Cohort = cohort
		s.Page = 1
	})
	return nil
}

// SetSort selects an ordering; empty restores the default.
func (st *Store) SetSort(sort string) {
	st.transition(func(s *Selection) {
		s.Sort = sort
		s.Page = 1
	})
}

// SetPage moves to a page; values below 1 clamp to 1.
func (st *Store) SetPage(page int) {
	st.transition(func(s *Selection) {
		s.Page = max(page, 1)
	})
}

// transition applies one state update and then mirrors the result into the
// URL. State is updated synchronously before the sync side effect runs.
func (st *Store) transition(apply func(*Selection)) {
	st.mu.Lock()
	apply(&st.sel)
	sel := st.sel
	syncFn := st.sync
	st.mu.Unlock()

	if syncFn != nil {
		syncFn(QueryParams(sel))
	}
}
