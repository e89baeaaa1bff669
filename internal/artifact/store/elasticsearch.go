// internal/artifact/store/elasticsearch.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"brandsignal/internal/common/errors"
	"brandsignal/internal/common/logger"
	"brandsignal/internal/models"
)

// Indexer mirrors categorized artifacts into Elasticsearch as a secondary
// sink. Index failures never fail the save path; the caller decides whether
// to log or surface them.
type Indexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(client *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "artifact_indexer"}),
	}
}

// IndexArtifact writes one categorized artifact document, keyed by the
// artifact id so re-indexing is idempotent.
func (ix *Indexer) IndexArtifact(ctx context.Context, artifact models.CategorizedArtifact) error {
	body, err := json.Marshal(artifact)
	if err != nil {
		return errors.NewIndexWriteFailedError(err)
	}

	res, err := ix.client.Index(
		ix.index,
		bytes.NewReader(body),
		ix.client.Index.WithContext(ctx),
		ix.client.Index.WithDocumentID(artifact.ID),
	)
	if err != nil {
		return errors.NewIndexWriteFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewIndexWriteFailedError(fmt.Errorf("index response: %s", res.Status()))
	}

	ix.logger.Debug("artifact indexed", map[string]interface{}{
		"artifactId": artifact.ID,
		"index":      ix.index,
	})
	return nil
}
