package roster

import "testing"

func TestCohortOf_RoundTrip(t *testing.T) {
	for _, cohort := range Cohorts {
		members, err := MembersOf(cohort)
		if err != nil {
			t.Fatalf("MembersOf(%s): %v", cohort, err)
		}
		for _, m := range members {
			got, err := CohortOf(m)
			if err != nil {
				t.Errorf("CohortOf(%s): %v", m, err)
				continue
			}
			if got != cohort {
				t.Errorf("CohortOf(%s) = %s, want %s", m, got, cohort)
			}
		}
	}
}

func TestCohortOf_UnknownMember(t *testing.T) {
	_, err := CohortOf("UNKNOWN")
	if err == nil {
		t.Fatal("CohortOf(UNKNOWN) should fail")
	}
}

func TestIsValidMember(t *testing.T) {
	if IsValidMember("unknown") {
		t.Error("IsValidMember(unknown) = true, want false")
	}
	if !IsValidMember("RIN") {
		t.Error("IsValidMember(RIN) = false, want true")
	}
	// Validation is over canonical names; lowercase variants must be
	// canonicalized first.
	if IsValidMember("rin") {
		t.Error("IsValidMember(rin) = true, want false (not canonical)")
	}
	if !IsValidMember(Canonical("rin")) {
		t.Error("IsValidMember(Canonical(rin)) = false, want true")
	}
}

func TestIsValidCohort(t *testing.T) {
	if !IsValidCohort("UNIVERSE") {
		t.Error("IsValidCohort(UNIVERSE) = false, want true")
	}
	if IsValidCohort("GEN4") {
		t.Error("IsValidCohort(GEN4) = true, want false")
	}
}

func TestMembersOf_ReturnsCopy(t *testing.T) {
	a, _ := MembersOf("MYSTIC")
	a[0] = "MUTATED"
	b, _ := MembersOf("MYSTIC")
	if b[0] == "MUTATED" {
		t.Error("MembersOf must not expose the underlying table")
	}
}

func TestAllMembers_CoversEveryCohort(t *testing.T) {
	total := 0
	for _, cohort := range Cohorts {
		members, _ := MembersOf(cohort)
		total += len(members)
	}
	if got := len(AllMembers()); got != total {
		t.Errorf("AllMembers() has %d members, want %d", got, total)
	}
}
