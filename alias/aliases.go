// Package alias holds the static canonicalization tables mapping free-text
// entity mentions (schools, locations, skills, companies) to canonical
// identifiers and their surface-form variations. All lookups are pure.
package alias

import "strings"

// Schools maps canonical school identifiers to known surface forms.
var Schools = map[string][]string{
	"iit_bombay":    {"IIT Bombay", "Indian Institute of Technology Bombay", "IITB", "IIT-Bombay"},
	"iit_delhi":     {"IIT Delhi", "Indian Institute of Technology Delhi", "IITD", "IIT-Delhi"},
	"iit_madras":    {"IIT Madras", "Indian Institute of Technology Madras", "IITM", "IIT-Madras"},
	"iit_kanpur":    {"IIT Kanpur", "Indian Institute of Technology Kanpur", "IITK", "IIT-Kanpur"},
	"iit_kharagpur": {"IIT Kharagpur", "Indian Institute of Technology Kharagpur", "IIT-KGP", "IITKGP"},
	"iisc":          {"IISc", "Indian Institute of Science", "IISc Bangalore", "IISc Bengaluru"},
	"bits_pilani":   {"BITS Pilani", "Birla Institute of Technology and Science", "BITS"},
	"stanford":      {"Stanford", "Stanford University", "Stanford GSB", "Stanford Graduate School of Business"},
	"mit":           {"MIT", "Massachusetts Institute of Technology", "MIT Sloan"},
	"harvard":       {"Harvard", "Harvard University", "Harvard Business School", "HBS"},
	"berkeley":      {"UC Berkeley", "Berkeley", "University of California, Berkeley", "UCB", "Cal"},
	"cmu":           {"CMU", "Carnegie Mellon", "Carnegie Mellon University"},
	"caltech":       {"Caltech", "California Institute of Technology"},
	"princeton":     {"Princeton", "Princeton University"},
	"yale":          {"Yale", "Yale University"},
	"columbia":      {"Columbia", "Columbia University"},
	"nyu":           {"NYU", "New York University"},
	"upenn":         {"UPenn", "Penn", "University of Pennsylvania", "Wharton"},
	"oxford":        {"Oxford", "University of Oxford", "Oxford University"},
	"cambridge":     {"Cambridge", "University of Cambridge", "Cambridge University"},
	"du":            {"Delhi University", "DU", "University of Delhi"},
	"iim_ahmedabad": {"IIM Ahmedabad", "IIM-A", "IIMA", "Indian Institute of Management Ahmedabad"},
	"iim_bangalore": {"IIM Bangalore", "IIM-B", "IIMB", "Indian Institute of Management Bangalore"},
	"nit":           {"NIT", "National Institute of Technology"},
	"vit":           {"VIT", "Vellore Institute of Technology"},
	"srm":           {"SRM", "SRM University", "SRM Institute of Science and Technology"},
}

// Locations maps canonical location identifiers to known surface forms.
var Locations = map[string][]string{
	"bangalore":     {"Bangalore", "Bengaluru", "Karnataka", "Blr", "BLR"},
	"mumbai":        {"Mumbai", "Bombay", "Maharashtra"},
	"delhi":         {"Delhi", "New Delhi", "NCR", "Gurgaon", "Gurugram", "Noida"},
	"hyderabad":     {"Hyderabad", "Hyd", "Telangana", "Secunderabad"},
	"chennai":       {"Chennai", "Madras", "Tamil Nadu"},
	"pune":          {"Pune", "Poona", "Maharashtra"},
	"kolkata":       {"Kolkata", "Calcutta", "West Bengal"},
	"san_francisco": {"San Francisco", "SF", "Bay Area", "Silicon Valley"},
	"new_york":      {"New York", "NYC", "New York City", "Manhattan", "Brooklyn"},
	"seattle":       {"Seattle", "Washington", "WA"},
	"austin":        {"Austin", "Texas", "TX"},
	"boston":        {"Boston", "Massachusetts", "MA"},
	"london":        {"London", "UK", "United Kingdom"},
	"singapore":     {"Singapore", "SG"},
	"dubai":         {"Dubai", "UAE", "United Arab Emirates"},
}

// Skills maps skill categories to semantically related terms.
var Skills = map[string][]string{
	"frontend": {"frontend", "front-end", "react", "reactjs", "vue", "vuejs", "angular",
		"javascript", "typescript", "ui engineer", "ui developer", "web developer",
		"nextjs", "html", "css", "tailwind"},
	"backend": {"backend", "back-end", "node", "nodejs", "django", "flask", "fastapi",
		"spring boot", "java", "python", "golang", "api development", "server-side"},
	"fullstack": {"fullstack", "full stack", "full-stack", "mern", "mean"},
	"machine_learning": {"machine learning", "ml", "deep learning", "neural networks",
		"tensorflow", "pytorch", "nlp", "natural language processing",
		"computer vision", "ai", "artificial intelligence", "data science"},
	"data_science": {"data science", "data scientist", "analytics", "pandas", "numpy",
		"statistics", "data analysis", "data analyst"},
	"devops": {"devops", "docker", "kubernetes", "k8s", "ci/cd", "aws", "cloud",
		"infrastructure", "sre", "site reliability"},
	"product":  {"product manager", "product management", "pm", "product owner", "product lead"},
	"design":   {"designer", "ui/ux", "ux designer", "ui designer", "product designer", "figma"},
	"mobile":   {"mobile", "ios", "android", "react native", "flutter", "swift", "kotlin"},
	"security": {"security", "cybersecurity", "infosec", "penetration testing", "security engineer"},
}

// Companies maps canonical company identifiers to subsidiaries and variations.
var Companies = map[string][]string{
	"google":    {"Google", "Alphabet", "Google Cloud", "GCP", "YouTube", "DeepMind"},
	"meta":      {"Meta", "Facebook", "Instagram", "WhatsApp", "Oculus"},
	"amazon":    {"Amazon", "AWS", "Amazon Web Services", "Twitch", "Whole Foods"},
	"microsoft": {"Microsoft", "Azure", "LinkedIn", "GitHub", "Xbox"},
	"apple":     {"Apple", "Apple Inc"},
	"netflix":   {"Netflix"},
	"faang":     {"Google", "Meta", "Facebook", "Amazon", "Apple", "Netflix", "Microsoft"},
	"startup":   {"startup", "founder", "co-founder", "cofounder", "entrepreneur", "ceo"},
}

// CanonicalSchool returns the canonical identifier for a school mention.
// Unknown schools are reduced to a truncated lowercase slug.
func CanonicalSchool(school string) string {
	lower := strings.ToLower(school)
	for canonical, variations := range Schools {
		for _, v := range variations {
			vl := strings.ToLower(v)
			if strings.Contains(lower, vl) || strings.Contains(vl, lower) {
				return canonical
			}
		}
	}
	slug := strings.ReplaceAll(lower, " ", "_")
	if len(slug) > 20 {
		slug = slug[:20]
	}
	return slug
}

// SchoolVariations returns all known surface forms for a school mention.
// Unknown schools return a single-element list with the input unchanged.
func SchoolVariations(school string) []string {
	lower := strings.ToLower(school)
	for _, variations := range Schools {
		for _, v := range variations {
			vl := strings.ToLower(v)
			if strings.Contains(lower, vl) || strings.Contains(vl, lower) {
				return variations
			}
		}
	}
	return []string{school}
}

// ExpandLocation returns all known surface forms for a location mention.
func ExpandLocation(location string) []string {
	lower := strings.ToLower(location)
	for _, variations := range Locations {
		for _, v := range variations {
			vl := strings.ToLower(v)
			if vl == lower || strings.Contains(vl, lower) {
				return variations
			}
		}
	}
	return []string{location}
}

// ExpandSkill returns the related-term list for a skill mention.
func ExpandSkill(skill string) []string {
	lower := strings.ToLower(skill)
	for _, terms := range Skills {
		for _, s := range terms {
			if strings.ToLower(s) == lower {
				return terms
			}
		}
	}
	return []string{skill}
}

// sorted canonical keys keep the prompt context stable across runs
var (
	schoolOrder = []string{
		"stanford", "mit", "harvard", "berkeley", "cmu", "iit_bombay",
		"iit_delhi", "iisc", "bits_pilani", "iim_ahmedabad",
	}
	locationOrder = []string{
		"bangalore", "mumbai", "delhi", "hyderabad", "san_francisco",
		"new_york", "london", "singapore",
	}
	skillOrder = []string{"frontend", "backend", "machine_learning", "devops", "product"}
)

// PromptContext renders a compact quick-reference of the alias tables for
// embedding in the query parser's system prompt.
func PromptContext() string {
	var b strings.Builder
	b.WriteString("## Quick Reference (use these, expand further as needed):\n")

	b.WriteString("\nSCHOOLS:\n")
	for _, canonical := range schoolOrder {
		v := Schools[canonical]
		b.WriteString("  " + v[0] + " = " + strings.Join(v[1:min(3, len(v))], ", ") + "\n")
	}

	b.WriteString("\nLOCATIONS:\n")
	for _, canonical := range locationOrder {
		v := Locations[canonical]
		b.WriteString("  " + v[0] + " = " + strings.Join(v[1:min(3, len(v))], ", ") + "\n")
	}

	b.WriteString("\nSKILLS:\n")
	for _, category := range skillOrder {
		terms := Skills[category]
		b.WriteString("  " + category + " = " + strings.Join(terms[:min(5, len(terms))], ", ") + "\n")
	}

	return b.String()
}
