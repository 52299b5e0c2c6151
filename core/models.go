package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ActorID is the unique identifier of a person profile within a corpus.
// It is derived deterministically from an external platform identifier
// or, failing that, from the actor's name.
type ActorID string

// ActorIDFor derives a stable ActorID for an actor. Re-running it on the
// same logical actor always yields the same ID.
func ActorIDFor(actor *Actor) ActorID {
	for _, identity := range actor.PlatformIdentities {
		if identity.PlatformID != "" {
			return ActorID(identity.PlatformID)
		}
	}
	return ActorID(slugify(actor.Profile.Name))
}

// slugify lowercases a name and reduces it to [a-z0-9_].
func slugify(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteByte('_')
		}
	}
	return b.String()
}

// HashText generates a deterministic 64-bit hash from text using BLAKE2b.
// Identical content always produces identical hashes. Used for cache keys.
func HashText(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// ChunkType identifies the category a chunk (and its vector namespace)
// belongs to.
type ChunkType string

const (
	ChunkEducation ChunkType = "education"
	ChunkSkills    ChunkType = "skills"
	ChunkCompanies ChunkType = "companies"
	ChunkLocation  ChunkType = "location"
)

// Namespaces returns all category namespaces in canonical order.
func Namespaces() []ChunkType {
	return []ChunkType{ChunkEducation, ChunkSkills, ChunkCompanies, ChunkLocation}
}

// ValidChunkType reports whether ct is one of the known categories.
func ValidChunkType(ct ChunkType) bool {
	switch ct {
	case ChunkEducation, ChunkSkills, ChunkCompanies, ChunkLocation:
		return true
	}
	return false
}

// PlatformIdentity links an actor to an external platform account.
type PlatformIdentity struct {
	PlatformID string `json:"platform_id"`
}

// ActorProfile holds the free-text profile fields of an actor.
type ActorProfile struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
}

// Education is one degree entry in an actor's history.
type Education struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
}

// WorkExperience is one role entry in an actor's history.
type WorkExperience struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
}

// Professional groups an actor's career history.
type Professional struct {
	Education      []Education      `json:"education"`
	WorkExperience []WorkExperience `json:"work_experience"`
}

// Actor is a raw person profile as ingested from the corpus.
// Immutable once ingested for a given search session.
type Actor struct {
	PlatformIdentities []PlatformIdentity `json:"platform_identities,omitempty"`
	Profile            ActorProfile       `json:"profile"`
	Professional       Professional       `json:"professional"`
}

// Profile is the compact canonical form of an actor, cached for display
// and reranking.
type Profile struct {
	ActorID     ActorID
	Name        string
	Headline    string
	Location    string
	Bio         string
	Education   []string // deduplicated school names
	Companies   []string // deduplicated company names
	CurrentRole string
}

// Chunk is a category-scoped unit of text derived from one actor.
// Chunks are write-once at ingestion time.
type Chunk struct {
	ActorID ActorID
	Type    ChunkType
	Text    string // the string to embed
	Meta    ChunkMeta
}

// ChunkMeta carries the category-specific structured fields stored
// alongside a vector. Only the fields relevant to the chunk's category
// are populated.
type ChunkMeta struct {
	ActorID   ActorID
	Name      string
	School    string   // education chunks
	Companies []string // companies chunks
	JobTitles []string // skills and companies chunks
	Location  string   // location chunks
}

// VectorRecord is an embedded chunk as stored in a namespace.
type VectorRecord struct {
	ID     string
	Vector []float32
	Meta   ChunkMeta
}

// VectorMatch is one nearest-neighbor hit from a namespace query.
type VectorMatch struct {
	ID    string
	Score float32
	Meta  ChunkMeta
}

// Candidate is a per-actor accumulator during search. Score starts as the
// mean of contributing category similarities and is overwritten by the
// reranker when reranking succeeds.
type Candidate struct {
	ActorID ActorID
	Score   float32
	Reason  string // reranker rationale, empty before reranking
	Profile *Profile
}

// Result is the final per-actor output unit with the score rounded to
// three decimals.
type Result struct {
	ActorID ActorID `json:"actor_id"`
	Score   float32 `json:"score"`
}

// Response is the full outcome of one search call.
type Response struct {
	Query      string
	Intent     Intent
	Results    []Result
	Candidates []*Candidate // same order as Results, with profile detail
	Degraded   []ChunkType  // categories dropped due to timeout or oracle failure
}
