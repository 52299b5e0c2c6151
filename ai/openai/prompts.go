package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/scout/alias"
	"github.com/poiesic/scout/core"
)

const parsePromptTemplate = `You are a query normalizer for a people search system. Your job is to:
1. Extract structured filters from natural language
2. EXPAND all abbreviations, acronyms, and aliases to their full forms AND common variations
3. Apply correct AND/OR logic based on user intent
4. Provide CANONICAL groupings (for AND logic verification)

%s

## CRITICAL RULES

### Canonicalization (IMPORTANT for AND logic):
When multiple schools, companies, or locations are mentioned with AND logic, group them by canonical ID:
- "Stanford and MIT" -> education_groups: [
    {"canonical": "stanford", "variations": ["Stanford", "Stanford University"]},
    {"canonical": "mit", "variations": ["MIT", "Massachusetts Institute of Technology"]}
  ]
- "IIT Bombay" -> education_groups: [{"canonical": "iit_bombay", "variations": ["IIT Bombay", "Indian Institute of Technology Bombay", "IITB"]}]
- "worked at both Google and Meta" -> company_groups with one group per company

### Abbreviation/Alias Expansion:
LOCATIONS: Expand to all variations (blr -> Bangalore, Bengaluru; sf -> San Francisco, Bay Area)
COLLEGES: Include short form, full name, common nicknames
SKILLS: Semantic expansion (frontend -> react, vue, angular, javascript, etc.)
COMPANIES: Include subsidiaries and variations

### AND/OR Logic:
- "Stanford AND MIT" -> education_logic: "AND", need BOTH schools
- "Stanford OR MIT" -> education_logic: "OR", either one
- Default: "OR" for most filters
- Cross-category: ALWAYS "AND"

## OUTPUT FORMAT
Return valid JSON:
{
    "education": [],
    "education_logic": "OR",
    "education_groups": [],
    "skills": [],
    "skills_logic": "OR",
    "companies": [],
    "companies_logic": "OR",
    "company_groups": [],
    "locations": [],
    "locations_logic": "OR",
    "location_groups": [],
    "normalized_query": "",
    "raw_intent": ""
}

## EXAMPLES

Query: "Stanford and MIT grads"
{
    "education": ["Stanford", "Stanford University", "MIT", "Massachusetts Institute of Technology"],
    "education_logic": "AND",
    "education_groups": [
        {"canonical": "stanford", "variations": ["Stanford", "Stanford University", "Stanford GSB"]},
        {"canonical": "mit", "variations": ["MIT", "Massachusetts Institute of Technology", "MIT Sloan"]}
    ],
    "skills": [],
    "skills_logic": "OR",
    "companies": [],
    "companies_logic": "OR",
    "company_groups": [],
    "locations": [],
    "locations_logic": "OR",
    "location_groups": [],
    "normalized_query": "Stanford and MIT graduates",
    "raw_intent": "People who studied at BOTH Stanford and MIT"
}

Query: "frontend devs in blr"
{
    "education": [],
    "education_logic": "OR",
    "education_groups": [],
    "skills": ["frontend", "react", "reactjs", "vue", "angular", "javascript", "typescript"],
    "skills_logic": "OR",
    "companies": [],
    "companies_logic": "OR",
    "company_groups": [],
    "locations": ["Bangalore", "Bengaluru", "Karnataka"],
    "locations_logic": "OR",
    "location_groups": [],
    "normalized_query": "frontend developers in Bangalore",
    "raw_intent": "Frontend engineers located in Bangalore"
}`

// buildParsePrompt creates the parser system prompt with the alias quick
// reference embedded.
func buildParsePrompt() string {
	return fmt.Sprintf(parsePromptTemplate, alias.PromptContext())
}

const rerankSystemPrompt = `You are a relevance judge for a people search system.
Score each candidate on how well they match the query intent.

SCORING RULES:
1. Score 0.0-1.0 where 1.0 is perfect match
2. Education queries: candidate MUST have studied at the mentioned school (not just worked there)
3. Skill queries: look for evidence in headline, role titles, and company context
4. Location queries: current location must match
5. Company queries: must have worked at the company
6. Be STRICT about AND logic - if query says "Stanford AND MIT", score 0 if missing either
7. For OR logic, having any one match is sufficient

Output JSON array with scores and brief explanations:
[{"index": 0, "score": 0.85, "reason": "Stanford grad, has ML experience"}, ...]`

// buildRerankPrompt renders the reranker user prompt for a candidate set.
func buildRerankPrompt(query string, intent core.Intent, candidates []*core.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %q\n\n", query)
	fmt.Fprintf(&b, "Parsed Intent:\n")
	fmt.Fprintf(&b, "- Education filter: %v (logic: %s)\n", intent.Education, intent.EducationLogic.Normalize())
	fmt.Fprintf(&b, "- Skills filter: %v (logic: %s)\n", intent.Skills, intent.SkillsLogic.Normalize())
	fmt.Fprintf(&b, "- Companies filter: %v (logic: %s)\n", intent.Companies, intent.CompaniesLogic.Normalize())
	fmt.Fprintf(&b, "- Locations filter: %v (logic: %s)\n", intent.Locations, intent.LocationsLogic.Normalize())
	b.WriteString("\nCandidates:\n")

	for i, c := range candidates {
		fmt.Fprintf(&b, "\nCandidate %d (ID: %s):\n", i+1, c.ActorID)
		if c.Profile == nil {
			continue
		}
		fmt.Fprintf(&b, "- Name: %s\n", c.Profile.Name)
		fmt.Fprintf(&b, "- Headline: %s\n", c.Profile.Headline)
		fmt.Fprintf(&b, "- Location: %s\n", c.Profile.Location)
		fmt.Fprintf(&b, "- Education: %s\n", strings.Join(c.Profile.Education, ", "))
		fmt.Fprintf(&b, "- Companies: %s\n", strings.Join(c.Profile.Companies, ", "))
		fmt.Fprintf(&b, "- Current Role: %s\n", c.Profile.CurrentRole)
	}

	b.WriteString("\nScore each candidate. Return ONLY valid JSON array.")
	return b.String()
}

const evaluateSystemPrompt = `You are evaluating search result quality. Be critical and identify issues.

Check for these problems:
1. EDUCATION LEAKAGE: Did a non-Stanford person appear for "Stanford" query because they worked at a company with Stanford grads?
2. SKILL MISMATCH: Did someone without frontend skills appear for "frontend" query?
3. AND/OR CONFUSION: If query said "A and B", did results include people with only A or only B?
4. LOCATION MISMATCH: Wrong city/country
5. SEMANTIC GAPS: Missing relevant people due to different terminology

Output JSON:
{
    "overall_score": 0-10,
    "precision": 0-1 (what fraction of results are relevant),
    "issues": ["list of specific issues found"],
    "feedback": "detailed feedback for improvement",
    "suggestions": ["specific suggestions to improve retrieval"]
}`

// buildEvaluatePrompt renders the evaluator user prompt for a result set.
func buildEvaluatePrompt(query string, intent core.Intent, results []*core.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %q\n\n", query)
	fmt.Fprintf(&b, "Intent: education=%v skills=%v companies=%v locations=%v\n\n",
		intent.Education, intent.Skills, intent.Companies, intent.Locations)
	b.WriteString("Top Results:\n")

	for i, r := range results {
		name, headline := "Unknown", ""
		if r.Profile != nil {
			name = r.Profile.Name
			headline = r.Profile.Headline
			if len(headline) > 80 {
				headline = headline[:80]
			}
		}
		fmt.Fprintf(&b, "#%d: %s - %s (score: %.2f)\n", i+1, name, headline, r.Score)
	}

	b.WriteString("\nEvaluate these results. Return ONLY valid JSON.")
	return b.String()
}
