package ingestion

import (
	"fmt"
	"strings"

	"github.com/poiesic/scout/core"
)

const (
	maxBioChars  = 300
	maxRoleLines = 5
)

// Normalize converts a raw actor record into its compact canonical profile
// and the category-scoped chunks to embed. Deterministic: normalizing the
// same actor twice yields identical output.
func Normalize(actor *core.Actor) (*core.Profile, []*core.Chunk) {
	actorID := core.ActorIDFor(actor)

	chunks := extractEducationChunks(actor, actorID)
	if chunk := extractSkillsChunk(actor, actorID); chunk != nil {
		chunks = append(chunks, chunk)
	}
	if chunk := extractCompaniesChunk(actor, actorID); chunk != nil {
		chunks = append(chunks, chunk)
	}
	if chunk := extractLocationChunk(actor, actorID); chunk != nil {
		chunks = append(chunks, chunk)
	}

	return buildProfile(actor, actorID), chunks
}

// extractEducationChunks builds one chunk per usable education entry.
// Entries whose school is empty or a placeholder are skipped.
func extractEducationChunks(actor *core.Actor, actorID core.ActorID) []*core.Chunk {
	var chunks []*core.Chunk
	for _, edu := range actor.Professional.Education {
		school := strings.TrimSpace(edu.School)
		if school == "" || school == "*" {
			continue
		}

		text := edu.School
		if edu.Degree != "" {
			text += ", " + edu.Degree
		}
		if edu.FieldOfStudy != "" {
			text += " in " + edu.FieldOfStudy
		}

		chunks = append(chunks, &core.Chunk{
			ActorID: actorID,
			Type:    core.ChunkEducation,
			Text:    text,
			Meta: core.ChunkMeta{
				ActorID: actorID,
				Name:    actor.Profile.Name,
				School:  edu.School,
			},
		})
	}
	return chunks
}

// extractSkillsChunk builds the single skills chunk, or nil when the actor
// has no headline, bio, or job titles to describe.
func extractSkillsChunk(actor *core.Actor, actorID core.ActorID) *core.Chunk {
	headline := actor.Profile.Headline
	bio := actor.Profile.Bio

	var titles []string
	for _, exp := range actor.Professional.WorkExperience {
		if exp.Title != "" {
			titles = append(titles, exp.Title)
		}
	}
	if len(titles) > maxRoleLines {
		titles = titles[:maxRoleLines]
	}

	if headline == "" && bio == "" && len(titles) == 0 {
		return nil
	}

	text := fmt.Sprintf("Skills and expertise: %s. Roles: %s.", headline, strings.Join(titles, ", "))
	if bio != "" {
		text += " Background: " + truncate(bio, maxBioChars)
	}

	return &core.Chunk{
		ActorID: actorID,
		Type:    core.ChunkSkills,
		Text:    text,
		Meta: core.ChunkMeta{
			ActorID:   actorID,
			Name:      actor.Profile.Name,
			JobTitles: titles,
		},
	}
}

// extractCompaniesChunk builds the single companies chunk, or nil when the
// actor has no work experience with company names.
func extractCompaniesChunk(actor *core.Actor, actorID core.ActorID) *core.Chunk {
	companies := make([]string, 0, len(actor.Professional.WorkExperience))
	seen := make(map[string]bool)
	var roles []string

	for _, exp := range actor.Professional.WorkExperience {
		if exp.CompanyName != "" && !seen[exp.CompanyName] {
			seen[exp.CompanyName] = true
			companies = append(companies, exp.CompanyName)
		}
		if exp.Title != "" {
			roles = append(roles, fmt.Sprintf("%s at %s", exp.Title, exp.CompanyName))
		}
	}

	if len(companies) == 0 {
		return nil
	}
	if len(roles) > maxRoleLines {
		roles = roles[:maxRoleLines]
	}

	text := fmt.Sprintf("Work experience at: %s. Roles: %s",
		strings.Join(companies, ", "), strings.Join(roles, ", "))

	return &core.Chunk{
		ActorID: actorID,
		Type:    core.ChunkCompanies,
		Text:    text,
		Meta: core.ChunkMeta{
			ActorID:   actorID,
			Name:      actor.Profile.Name,
			Companies: companies,
			JobTitles: roles,
		},
	}
}

// extractLocationChunk builds the single location chunk, or nil when the
// actor has no location.
func extractLocationChunk(actor *core.Actor, actorID core.ActorID) *core.Chunk {
	if actor.Profile.Location == "" {
		return nil
	}
	return &core.Chunk{
		ActorID: actorID,
		Type:    core.ChunkLocation,
		Text:    "Located in: " + actor.Profile.Location,
		Meta: core.ChunkMeta{
			ActorID:  actorID,
			Name:     actor.Profile.Name,
			Location: actor.Profile.Location,
		},
	}
}

// buildProfile assembles the compact display profile.
func buildProfile(actor *core.Actor, actorID core.ActorID) *core.Profile {
	var education []string
	schoolsSeen := make(map[string]bool)
	for _, edu := range actor.Professional.Education {
		school := strings.TrimSpace(edu.School)
		if school != "" && school != "*" && !schoolsSeen[school] {
			schoolsSeen[school] = true
			education = append(education, edu.School)
		}
	}

	var companies []string
	seen := make(map[string]bool)
	for _, exp := range actor.Professional.WorkExperience {
		if exp.CompanyName != "" && !seen[exp.CompanyName] {
			seen[exp.CompanyName] = true
			companies = append(companies, exp.CompanyName)
		}
	}

	currentRole := ""
	if len(actor.Professional.WorkExperience) > 0 {
		latest := actor.Professional.WorkExperience[0]
		if latest.Title != "" || latest.CompanyName != "" {
			currentRole = fmt.Sprintf("%s at %s", latest.Title, latest.CompanyName)
		}
	}

	return &core.Profile{
		ActorID:     actorID,
		Name:        actor.Profile.Name,
		Headline:    actor.Profile.Headline,
		Location:    actor.Profile.Location,
		Bio:         actor.Profile.Bio,
		Education:   education,
		Companies:   companies,
		CurrentRole: currentRole,
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
