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


// Package search provides the retrieval and combination engine.
//
// The Retriever type implements a multi-stage search algorithm:
//   - Per-category vector search over independent namespaces
//   - Bidirectional substring containment filtering to suppress embedding
//     false positives
//   - Canonical-group verification for multi-term AND constraints
//   - Cross-category intersection with mean score aggregation
//   - LLM-backed reranking of the leading candidates
//
// Category searches fan out concurrently; a timed-out or failed category
// is dropped from the combination rather than failing the whole search.
package search
