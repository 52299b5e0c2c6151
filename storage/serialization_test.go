package storage

import (
	"testing"

	"github.com/poiesic/scout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalVectorRecord(t *testing.T) {
	tests := []struct {
		name   string
		record *core.VectorRecord
	}{
		{
			name: "minimal record",
			record: &core.VectorRecord{
				ID:     "skills_jane_doe_0",
				Vector: []float32{0.1, 0.2, 0.3},
				Meta: core.ChunkMeta{
					ActorID: "jane_doe",
					Name:    "Jane Doe",
				},
			},
		},
		{
			name: "record with full metadata",
			record: &core.VectorRecord{
				ID:     "education_jane_doe_1",
				Vector: []float32{0.5, -0.25, 0.75, 1.0},
				Meta: core.ChunkMeta{
					ActorID:   "jane_doe",
					Name:      "Jane Doe",
					School:    "stanford university",
					Companies: []string{"acme corp", "globex"},
					JobTitles: []string{"staff engineer", "engineer"},
					Location:  "san francisco, usa",
				},
			},
		},
		{
			name: "record with empty vector",
			record: &core.VectorRecord{
				ID:   "location_x_0",
				Meta: core.ChunkMeta{ActorID: "x"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalVectorRecord(tt.record)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalVectorRecord(data)
			require.NoError(t, err)
			assert.Equal(t, tt.record.ID, decoded.ID)
			if len(tt.record.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.record.Vector, decoded.Vector)
			}
			assert.Equal(t, tt.record.Meta.ActorID, decoded.Meta.ActorID)
			assert.Equal(t, tt.record.Meta.School, decoded.Meta.School)
			assert.Equal(t, tt.record.Meta.Companies, decoded.Meta.Companies)
		})
	}
}

func TestMarshalUnmarshalProfile(t *testing.T) {
	profile := &core.Profile{
		ActorID:     "asha_k_rao",
		Name:        "Asha K. Rao",
		Headline:    "Backend engineer, distributed systems",
		Location:    "bengaluru, india",
		Bio:         "Builds storage engines and query planners.",
		Education:   []string{"iit madras, b.tech in computer science"},
		Companies:   []string{"acme corp"},
		CurrentRole: "staff engineer at acme corp",
	}

	data := MarshalProfile(profile)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalProfile(data)
	require.NoError(t, err)
	assert.Equal(t, profile, decoded)
}

func TestUnmarshalVectorRecord_Truncated(t *testing.T) {
	record := &core.VectorRecord{
		ID:     "companies_a_0",
		Vector: []float32{0.9, 0.8},
		Meta:   core.ChunkMeta{ActorID: "a", Companies: []string{"acme corp"}},
	}
	data := MarshalVectorRecord(record)

	// Chop the buffer mid-record; decoding must fail, not panic.
	_, err := UnmarshalVectorRecord(data[:len(data)/2])
	assert.Error(t, err)
}

func TestUnmarshalProfile_Empty(t *testing.T) {
	_, err := UnmarshalProfile([]byte{})
	assert.Error(t, err)
}
