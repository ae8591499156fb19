// Package roster holds the static cohort→member taxonomy.
//
// The table is configuration data: it is defined once here, and every
// ingress boundary (URL params, search inputs) validates external strings
// against it before treating them as domain values.
package roster

import (
	"errors"
	"fmt"
	"strings"
)

// All is the sentinel meaning "no filter" for both cohorts and members.
const All = "ALL"

// ErrUnknownMember is returned when a name does not match any member.
var ErrUnknownMember = errors.New("unknown member")

// ErrUnknownCohort is returned when a name does not match any cohort.
var ErrUnknownCohort = errors.New("unknown cohort")

// Cohorts lists cohort names in display order.
var Cohorts = []string{"MYSTIC", "UNIVERSE", "CLICHE"}

// table maps each cohort to its members in display order.
// Canonical member names are uppercase.
var table = map[string][]string{
	"MYSTIC":   {"KANNA", "YUNI"},
	"UNIVERSE": {"HINA", "MASHIRO", "LIZE", "TABI"},
	"CLICHE":   {"SHIBUKI", "RIN", "NANA", "RIKO"},
}

// MembersOf returns the members of a cohort in display order.
// The returned slice is a copy; callers may not mutate the table.
func MembersOf(cohort string) ([]string, error) {
	members, ok := table[cohort]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCohort, cohort)
	}
	out := make([]string, len(members))
	copy(out, members)
	return out, nil
}

// CohortOf returns the cohort a member belongs to. Every member belongs to
// exactly one cohort, so the first match wins.
func CohortOf(member string) (string, error) {
	for _, cohort := range Cohorts {
		for _, m := range table[cohort] {
			if m == member {
				return cohort, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownMember, member)
}

// IsValidMember reports whether s is a canonical member name.
func IsValidMember(s string) bool {
	_, err := CohortOf(s)
	return err == nil
}

// IsValidCohort reports whether s is a cohort name.
func IsValidCohort(s string) bool {
	_, ok := table[s]
	return ok
}

// Canonical uppercases s so case-insensitive variants of member names
// match canonical storage.
func Canonical(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// AllMembers returns every member across all cohorts in display order.
func AllMembers() []string {
	var out []string
	for _, cohort := range Cohorts {
		out = append(out, table[cohort]...)
	}
	return out
}
