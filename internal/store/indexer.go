// internal/store/indexer.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"minutes-service/internal/common/database"
	"minutes-service/internal/common/logger"
	"minutes-service/internal/models"
)

// Indexer mirrors saved records into Elasticsearch. Indexing is best-effort:
// a failure is logged and the save still succeeds.
type Indexer struct {
	es     *database.ElasticsearchClient
	index  string
	logger logger.Logger
}

// NewIndexer builds an indexer. es may be nil, which disables indexing.
func NewIndexer(es *database.ElasticsearchClient, index string, log logger.Logger) *Indexer {
	return &Indexer{es: es, index: index, logger: log}
}

type indexDoc struct {
	ProjectName  string          `json:"project_name"`
	BusinessCode string          `json:"business_code"`
	Payload      json.RawMessage `json:"payload"`
	CreatedAt    time.Time       `json:"created_at"`
}

// IndexRecord queues the record for indexing and returns immediately.
func (i *Indexer) IndexRecord(rec models.Record) {
	if i == nil || i.es == nil {
		return
	}
	go i.indexNow(rec)
}

func (i *Indexer) indexNow(rec models.Record) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doc := indexDoc{
		ProjectName:  rec.ProjectName,
		BusinessCode: rec.BusinessCode,
		Payload:      json.RawMessage(rec.Payload),
		CreatedAt:    rec.CreatedAt,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		i.logger.Warn("record index marshal failed", map[string]interface{}{
			"recordId": rec.ID,
			"error":    err.Error(),
		})
		return
	}

	res, err := i.es.Client.Index(
		i.index,
		bytes.NewReader(body),
		i.es.Client.Index.WithDocumentID(rec.ID),
		i.es.Client.Index.WithContext(ctx),
	)
	if err != nil {
		i.logger.Warn("record indexing failed", map[string]interface{}{
			"recordId": rec.ID,
			"error":    err.Error(),
		})
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		i.logger.Warn("record indexing rejected", map[string]interface{}{
			"recordId": rec.ID,
			"status":   res.Status(),
		})
	}
}
