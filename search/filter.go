package search

import (
	"strings"

	"github.com/poiesic/scout/core"
)

// matchTerm reports whether a query term and a record field match by
// bidirectional substring containment, handling both abbreviation
// ("stanford" inside "stanford university") and over-specification.
// Both inputs must already be lowercased. Empty strings never match.
func matchTerm(term, field string) bool {
	if term == "" || field == "" {
		return false
	}
	return strings.Contains(field, term) || strings.Contains(term, field)
}

// matchesAny reports whether any term matches the field.
func matchesAny(terms []string, field string) bool {
	for _, term := range terms {
		if matchTerm(term, field) {
			return true
		}
	}
	return false
}

// lowerAll returns lowercased copies of the given terms.
func lowerAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, term := range terms {
		out[i] = strings.ToLower(term)
	}
	return out
}

// verifyGroups returns the actors whose fields satisfy EVERY canonical
// group: for each group, at least one of the actor's fields must match
// (bidirectional containment) at least one of the group's variations.
// actorFields maps each actor to the lowercased category field values
// collected from the raw, unfiltered result list. A single embedding
// query cannot disambiguate "has both X and Y" from "has either", so
// this group-wise re-scan is the AND correctness mechanism.
func verifyGroups(groups []core.CanonicalGroup, actorFields map[core.ActorID][]string) map[core.ActorID]bool {
	valid := make(map[core.ActorID]bool)

	for actorID, fields := range actorFields {
		matched := 0
		for _, group := range groups {
			variations := lowerAll(group.Variations)
			groupHit := false
			for _, field := range fields {
				if matchesAny(variations, field) {
					groupHit = true
					break
				}
			}
			if groupHit {
				matched++
			}
		}
		if matched == len(groups) {
			valid[actorID] = true
		}
	}

	return valid
}
