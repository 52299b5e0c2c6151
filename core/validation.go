// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateActor validates an Actor according to domain rules.
//
// Validation rules:
//   - Profile.Name must not be empty (an ActorID must be derivable)
//
// NOT validated (free-form corpus fields):
//   - Headline, Bio, Location (may all be empty)
//   - Education and WorkExperience entries (placeholder schools are
//     skipped by the normalizer, not rejected here)
func ValidateActor(actor *Actor) error {
	if actor == nil {
		return fmt.Errorf("%w: actor is nil", ErrInvalidActor)
	}
	if actor.Profile.Name == "" && ActorIDFor(actor) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidActor, ErrEmptyActorName)
	}
	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - ActorID must not be empty
//   - Type must be a known category
//   - Text must not be empty (it is the string to embed)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}
	if chunk.ActorID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyActorID)
	}
	if !ValidChunkType(chunk.Type) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidChunk, ErrInvalidChunkType, chunk.Type)
	}
	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkText)
	}
	return nil
}
