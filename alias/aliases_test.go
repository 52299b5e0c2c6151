package alias

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalSchool(t *testing.T) {
	assert.Equal(t, "stanford", CanonicalSchool("Stanford University"))
	assert.Equal(t, "stanford", CanonicalSchool("stanford"))
	assert.Equal(t, "mit", CanonicalSchool("MIT Sloan"))
	assert.Equal(t, "iisc", CanonicalSchool("Indian Institute of Science"))

	t.Run("unknown school becomes slug", func(t *testing.T) {
		got := CanonicalSchool("Obscure State College Of Engineering")
		assert.Equal(t, "obscure_state_colleg", got)
		assert.LessOrEqual(t, len(got), 20)
	})
}

func TestSchoolVariations(t *testing.T) {
	vars := SchoolVariations("stanford")
	assert.Contains(t, vars, "Stanford University")

	unknown := SchoolVariations("Night School")
	assert.Equal(t, []string{"Night School"}, unknown)
}

func TestExpandLocation(t *testing.T) {
	vars := ExpandLocation("blr")
	assert.Contains(t, vars, "Bengaluru")
	assert.Contains(t, vars, "Bangalore")

	assert.Equal(t, []string{"Atlantis"}, ExpandLocation("Atlantis"))
}

func TestExpandSkill(t *testing.T) {
	terms := ExpandSkill("frontend")
	assert.Contains(t, terms, "react")
	assert.Contains(t, terms, "typescript")

	assert.Equal(t, []string{"cobol"}, ExpandSkill("cobol"))
}

func TestPromptContext(t *testing.T) {
	ctx := PromptContext()
	assert.Contains(t, ctx, "SCHOOLS:")
	assert.Contains(t, ctx, "LOCATIONS:")
	assert.Contains(t, ctx, "SKILLS:")
	assert.Contains(t, ctx, "Stanford")

	// Stable across calls so parser prompts are cacheable.
	assert.Equal(t, ctx, PromptContext())
	assert.Greater(t, strings.Count(ctx, "\n"), 10)
}
