package search

import (
	"context"
	"strings"

	"github.com/poiesic/scout/core"
)

const (
	// categoryTopK is the raw neighbor count fetched per category before
	// local filtering.
	categoryTopK = 100

	// fallbackTopK bounds the generic skills-namespace fallback search.
	fallbackTopK = 50
)

// categoryHit is one actor surviving a category's search and filtering.
type categoryHit struct {
	actorID core.ActorID
	score   float32
}

// searchCategory runs one category's vector search and local filtering.
// Returns the deduplicated, filtered hits in descending similarity order.
func (r *Retriever) searchCategory(ctx context.Context, category core.ChunkType, intent *core.Intent) ([]categoryHit, error) {
	queryText := buildQueryText(category, intent)

	vector, err := r.embedder.EmbedText(ctx, queryText)
	if err != nil {
		return nil, err
	}

	matches, err := r.store.Query(ctx, string(category), vector, categoryTopK)
	if err != nil {
		return nil, err
	}

	// Skills are free-form semantic, not exact-matchable; trust the
	// similarity score directly.
	if category == core.ChunkSkills {
		return dedupeByActor(matches, nil), nil
	}

	terms := lowerAll(intent.Terms(category))
	hits := dedupeByActor(matches, func(m *core.VectorMatch) bool {
		return matchesAny(terms, categoryField(category, &m.Meta))
	})

	// Multi-group AND requires per-actor verification over the RAW result
	// list: the containment filter alone cannot prove an actor matched
	// every group.
	groups := intent.GroupsFor(category)
	if intent.LogicFor(category) == core.LogicAnd && len(groups) > 1 {
		hits = filterByGroups(hits, groups, matches, category)
	}

	return hits, nil
}

// buildQueryText synthesizes the embedding query string for one category
// from the intent's already-expanded term list.
func buildQueryText(category core.ChunkType, intent *core.Intent) string {
	terms := intent.Terms(category)
	switch category {
	case core.ChunkEducation:
		return "Studied at " + strings.Join(terms, " ")
	case core.ChunkSkills:
		if intent.NormalizedQuery != "" {
			return "Skills: " + intent.NormalizedQuery
		}
		return "Skills and expertise in: " + strings.Join(terms, ", ")
	case core.ChunkCompanies:
		return "Worked at " + strings.Join(terms, " ")
	case core.ChunkLocation:
		return "Located in " + strings.Join(terms, " ")
	}
	return strings.Join(terms, " ")
}

// categoryField extracts the lowercased metadata field the containment
// filter compares against for one category.
func categoryField(category core.ChunkType, meta *core.ChunkMeta) string {
	switch category {
	case core.ChunkEducation:
		return strings.ToLower(meta.School)
	case core.ChunkCompanies:
		return strings.ToLower(strings.Join(meta.Companies, " "))
	case core.ChunkLocation:
		return strings.ToLower(meta.Location)
	}
	return ""
}

// dedupeByActor keeps the first (highest-similarity) occurrence per actor,
// applying keep to each match first when provided.
func dedupeByActor(matches []*core.VectorMatch, keep func(*core.VectorMatch) bool) []categoryHit {
	var hits []categoryHit
	seen := make(map[core.ActorID]bool)
	for _, m := range matches {
		if m.Meta.ActorID == "" {
			continue
		}
		if keep != nil && !keep(m) {
			continue
		}
		if seen[m.Meta.ActorID] {
			continue
		}
		seen[m.Meta.ActorID] = true
		hits = append(hits, categoryHit{actorID: m.Meta.ActorID, score: m.Score})
	}
	return hits
}

// filterByGroups drops hits whose actor does not satisfy every canonical
// group, judged against the raw unfiltered match list.
func filterByGroups(hits []categoryHit, groups []core.CanonicalGroup, raw []*core.VectorMatch, category core.ChunkType) []categoryHit {
	actorFields := make(map[core.ActorID][]string)
	for _, m := range raw {
		if m.Meta.ActorID == "" {
			continue
		}
		actorFields[m.Meta.ActorID] = append(actorFields[m.Meta.ActorID], categoryField(category, &m.Meta))
	}

	valid := verifyGroups(groups, actorFields)

	kept := hits[:0]
	for _, hit := range hits {
		if valid[hit.actorID] {
			kept = append(kept, hit)
		}
	}
	return kept
}

// searchFallback is the generic semantic search used when the parsed
// intent activated no categories. It queries the skills namespace with the
// normalized query (or the raw query text when normalization is empty) and
// applies no containment filter.
func (r *Retriever) searchFallback(ctx context.Context, query string, intent *core.Intent) ([]categoryHit, error) {
	text := intent.NormalizedQuery
	if text == "" {
		text = query
	}

	vector, err := r.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	matches, err := r.store.Query(ctx, string(core.ChunkSkills), vector, fallbackTopK)
	if err != nil {
		return nil, err
	}

	return dedupeByActor(matches, nil), nil
}
