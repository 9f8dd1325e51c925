package profile

import "strings"

// HighestIncomeWithBirthInMonth returns the profile with the highest combined
// income among those that have children and whose estimated child birth date
// contains the given month pattern (e.g. "05.2020" — a substring match, not
// calendar parsing). Profiles without a birth estimate are excluded before
// the substring test. Ties keep the first-encountered profile. The second
// return value is false when nothing matches.
//
// This is pure domain logic — no I/O, no side effects.
func HighestIncomeWithBirthInMonth(profiles []CombinedProfile, monthPattern string) (CombinedProfile, bool) {
	var best CombinedProfile
	found := false
	for _, p := range profiles {
		if !p.HasChildren {
			continue
		}
		if p.EstimatedChildBirthDate == nil {
			continue
		}
		if !strings.Contains(*p.EstimatedChildBirthDate, monthPattern) {
			continue
		}
		if !found || p.CombinedIncome() > best.CombinedIncome() {
			best = p
			found = true
		}
	}
	return best, found
}
