// Package ingestion provides pipeline orchestration for indexing actor records.
//
// The Pipeline type manages the ingestion workflow for actors, including:
//   - Normalizing raw actor records into display profiles and category chunks
//   - Embedding chunk texts in batches
//   - Upserting vector records into their category namespaces
//
// Namespaces are processed concurrently using a worker pool. Embedding and
// upsert calls are retried with a fixed delay before the namespace is
// reported as failed.
package ingestion
