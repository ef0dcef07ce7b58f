package schedule

import "strings"

// MatchDoctors returns every catalog row whose doctor name matches the
// free-text query. Both sides are normalized by lower-casing and dropping
// honorific tokens, then the query matches a row iff every query word appears
// in the row's name word-set, in any order. A blank query matches nothing.
func MatchDoctors(query string, entries []Entry) []Entry {
	queryWords := normalizeName(query)
	if len(queryWords) == 0 {
		return nil
	}

	var matches []Entry
	for _, entry := range entries {
		if containsAll(wordSet(normalizeName(entry.Doctor)), queryWords) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// FilterBySpecialty keeps rows whose specialty contains the query as a
// case-insensitive substring. Specialty labels are long multi-word strings,
// so substring matching is intentional here.
func FilterBySpecialty(query string, entries []Entry) []Entry {
	search := strings.ToLower(strings.TrimSpace(query))
	if search == "" {
		return nil
	}

	var matches []Entry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Specialty), search) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// UniqueDoctors collapses multi-row doctors to one summary each, preserving
// first-seen order. Availability must keep working from the full row set;
// this view exists only for clarification prompts.
func UniqueDoctors(entries []Entry) []DoctorSummary {
	seen := make(map[string]bool, len(entries))
	var out []DoctorSummary
	for _, entry := range entries {
		if seen[entry.Doctor] {
			continue
		}
		seen[entry.Doctor] = true
		out = append(out, DoctorSummary{Doctor: entry.Doctor, Specialty: entry.Specialty})
	}
	return out
}

// UniqueSpecialties lists the distinct specialty labels in the catalog,
// first-seen order.
func UniqueSpecialties(entries []Entry) []string {
	seen := make(map[string]bool, len(entries))
	var out []string
	for _, entry := range entries {
		if entry.Specialty == "" || seen[entry.Specialty] {
			continue
		}
		seen[entry.Specialty] = true
		out = append(out, entry.Specialty)
	}
	return out
}

// normalizeName lower-cases the name, splits it into words, and drops
// honorific tokens ("dr.", "dr", "prof", with or without a trailing dot).
func normalizeName(name string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(name)) {
		switch strings.TrimSuffix(w, ".") {
		case "dr", "prof":
			continue
		}
		words = append(words, w)
	}
	return words
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func containsAll(set map[string]bool, words []string) bool {
	for _, w := range words {
		if !set[w] {
			return false
		}
	}
	return true
}
