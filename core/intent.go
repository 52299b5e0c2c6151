package core

// Logic selects how terms within one category combine.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Normalize maps unknown logic values to the default OR.
func (l Logic) Normalize() Logic {
	if l == LogicAnd {
		return LogicAnd
	}
	return LogicOr
}

// CanonicalGroup is a named equivalence class of surface-form variations
// for one entity, used to verify multi-term AND constraints.
type CanonicalGroup struct {
	Canonical  string   `json:"canonical"`
	Variations []string `json:"variations"`
}

// Intent is the structured representation of one parsed query.
// Terms are already expanded (aliases, abbreviations) by the parser.
type Intent struct {
	Education      []string `json:"education"`
	EducationLogic Logic    `json:"education_logic"`
	// EducationGroups is consulted only when EducationLogic is AND and
	// more than one group is present.
	EducationGroups []CanonicalGroup `json:"education_groups"`

	Skills      []string `json:"skills"`
	SkillsLogic Logic    `json:"skills_logic"`

	Companies      []string         `json:"companies"`
	CompaniesLogic Logic            `json:"companies_logic"`
	CompanyGroups  []CanonicalGroup `json:"company_groups"`

	Locations      []string         `json:"locations"`
	LocationsLogic Logic            `json:"locations_logic"`
	LocationGroups []CanonicalGroup `json:"location_groups"`

	NormalizedQuery string `json:"normalized_query"`
	RawIntent       string `json:"raw_intent"`
}

// FallbackIntent is the permissive default structure used when query
// parsing fails: the raw query becomes a single skills term with OR logic.
func FallbackIntent(query string) Intent {
	return Intent{
		Skills:          []string{query},
		EducationLogic:  LogicOr,
		SkillsLogic:     LogicOr,
		CompaniesLogic:  LogicOr,
		LocationsLogic:  LogicOr,
		NormalizedQuery: query,
		RawIntent:       query,
	}
}

// Normalize defaults all logic flags and drops unusable group entries.
func (in *Intent) Normalize() {
	in.EducationLogic = in.EducationLogic.Normalize()
	in.SkillsLogic = in.SkillsLogic.Normalize()
	in.CompaniesLogic = in.CompaniesLogic.Normalize()
	in.LocationsLogic = in.LocationsLogic.Normalize()
	in.EducationGroups = pruneGroups(in.EducationGroups)
	in.CompanyGroups = pruneGroups(in.CompanyGroups)
	in.LocationGroups = pruneGroups(in.LocationGroups)
}

func pruneGroups(groups []CanonicalGroup) []CanonicalGroup {
	kept := groups[:0]
	for _, g := range groups {
		if len(g.Variations) > 0 {
			kept = append(kept, g)
		}
	}
	return kept
}

// Terms returns the intent's term list for a category.
func (in *Intent) Terms(ct ChunkType) []string {
	switch ct {
	case ChunkEducation:
		return in.Education
	case ChunkSkills:
		return in.Skills
	case ChunkCompanies:
		return in.Companies
	case ChunkLocation:
		return in.Locations
	}
	return nil
}

// LogicFor returns the within-category logic flag for a category.
func (in *Intent) LogicFor(ct ChunkType) Logic {
	switch ct {
	case ChunkEducation:
		return in.EducationLogic.Normalize()
	case ChunkSkills:
		return in.SkillsLogic.Normalize()
	case ChunkCompanies:
		return in.CompaniesLogic.Normalize()
	case ChunkLocation:
		return in.LocationsLogic.Normalize()
	}
	return LogicOr
}

// GroupsFor returns the canonical groups for a category, if any.
func (in *Intent) GroupsFor(ct ChunkType) []CanonicalGroup {
	switch ct {
	case ChunkEducation:
		return in.EducationGroups
	case ChunkCompanies:
		return in.CompanyGroups
	case ChunkLocation:
		return in.LocationGroups
	}
	return nil
}

// ActiveCategories lists the categories activated by non-empty term lists.
func (in *Intent) ActiveCategories() []ChunkType {
	var active []ChunkType
	for _, ct := range Namespaces() {
		if len(in.Terms(ct)) > 0 {
			active = append(active, ct)
		}
	}
	return active
}
