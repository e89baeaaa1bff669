// internal/artifact/store/postgres.go
// Package store persists categorized artifacts to Postgres and mirrors them
// into Elasticsearch for search.
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"brandsignal/internal/common/errors"
	"brandsignal/internal/common/logger"
	"brandsignal/internal/models"
)

// PostgresStore is the primary artifact sink.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "artifact_store"}),
	}
}

// SaveArtifact inserts or replaces one categorized artifact.
func (s *PostgresStore) SaveArtifact(ctx context.Context, artifact models.CategorizedArtifact) error {
	content, err := json.Marshal(artifact.Content)
	if err != nil {
		return errors.NewStoreInsertFailedError(err)
	}
	metadata, err := json.Marshal(artifact.Metadata)
	if err != nil {
		return errors.NewStoreInsertFailedError(err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO artifacts (id, type, title, content, metadata, category, tags,
		                       priority, related_artifact_ids, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (id) DO UPDATE SET
			category = EXCLUDED.category,
			tags = EXCLUDED.tags,
			priority = EXCLUDED.priority,
			related_artifact_ids = EXCLUDED.related_artifact_ids,
			confidence = EXCLUDED.confidence`,
		artifact.ID, artifact.Type, artifact.Title, content, metadata,
		artifact.Category, pq.Array(artifact.Tags), artifact.Priority,
		pq.Array(artifact.RelatedArtifactIDs), artifact.Confidence,
	)
	if err != nil {
		return errors.NewStoreInsertFailedError(err)
	}

	s.logger.Debug("artifact saved", map[string]interface{}{
		"artifactId": artifact.ID,
		"category":   artifact.Category,
	})
	return nil
}

// GetArtifact loads one categorized artifact by id. Returns sql.ErrNoRows
// wrapped as a query error when absent.
func (s *PostgresStore) GetArtifact(ctx context.Context, id string) (*models.CategorizedArtifact, error) {
	var (
		artifact models.CategorizedArtifact
		content  []byte
		metadata []byte
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, type, title, content, metadata, category, tags,
		       priority, related_artifact_ids, confidence
		FROM artifacts
		WHERE id = $1`, id).Scan(
		&artifact.ID, &artifact.Type, &artifact.Title, &content, &metadata,
		&artifact.Category, pq.Array(&artifact.Tags), &artifact.Priority,
		pq.Array(&artifact.RelatedArtifactIDs), &artifact.Confidence,
	)
	if err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}

	if err := json.Unmarshal(content, &artifact.Content); err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}
	if err := json.Unmarshal(metadata, &artifact.Metadata); err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}

	return &artifact, nil
}

// ListByCategory returns artifacts in one category, most recent first.
func (s *PostgresStore) ListByCategory(ctx context.Context, category string, limit int) ([]models.CategorizedArtifact, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, title, content, metadata, category, tags,
		       priority, related_artifact_ids, confidence
		FROM artifacts
		WHERE category = $1
		ORDER BY created_at DESC
		LIMIT $2`, category, limit)
	if err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}
	defer rows.Close()

	artifacts := make([]models.CategorizedArtifact, 0)
	for rows.Next() {
		var (
			artifact models.CategorizedArtifact
			content  []byte
			metadata []byte
		)
		if err := rows.Scan(
			&artifact.ID, &artifact.Type, &artifact.Title, &content, &metadata,
			&artifact.Category, pq.Array(&artifact.Tags), &artifact.Priority,
			pq.Array(&artifact.RelatedArtifactIDs), &artifact.Confidence,
		); err != nil {
			return nil, errors.NewStoreQueryFailedError(err)
		}
		if err := json.Unmarshal(content, &artifact.Content); err != nil {
			return nil, errors.NewStoreQueryFailedError(err)
		}
		if err := json.Unmarshal(metadata, &artifact.Metadata); err != nil {
			return nil, errors.NewStoreQueryFailedError(err)
		}
		artifacts = append(artifacts, artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}

	return artifacts, nil
}
