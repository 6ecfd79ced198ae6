// internal/store/records.go

// Package store persists form snapshots in Postgres and mirrors them into
// Elasticsearch for search.
package store

import (
	"context"
	"database/sql"

	"minutes-service/internal/common/database"
	"minutes-service/internal/common/errors"
	"minutes-service/internal/common/logger"
	"minutes-service/internal/common/metrics"
	"minutes-service/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS records (
		id UUID PRIMARY KEY,
		project_name TEXT NOT NULL DEFAULT '',
		business_code TEXT NOT NULL DEFAULT '',
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

	insertRecordSQL = `INSERT INTO records (id, project_name, business_code, payload)
		VALUES ($1, $2, $3, $4) RETURNING created_at`

	countRecordsSQL = `SELECT COUNT(*) FROM records
		WHERE ($1::date IS NULL OR created_at >= $1::date)
		  AND ($2::date IS NULL OR created_at < $2::date + INTERVAL '1 day')`

	listRecordsSQL = `SELECT id, project_name, business_code, created_at FROM records
		WHERE ($1::date IS NULL OR created_at >= $1::date)
		  AND ($2::date IS NULL OR created_at < $2::date + INTERVAL '1 day')
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`

	fetchByIDsSQL = `SELECT id, project_name, business_code, payload, created_at
		FROM records WHERE id = ANY($1) ORDER BY created_at DESC`

	fetchRangeSQL = `SELECT id, project_name, business_code, payload, created_at
		FROM records
		WHERE ($1::date IS NULL OR created_at >= $1::date)
		  AND ($2::date IS NULL OR created_at < $2::date + INTERVAL '1 day')
		ORDER BY created_at DESC`

	deleteRecordSQL = `DELETE FROM records WHERE id = $1`
	deleteBatchSQL  = `DELETE FROM records WHERE id = ANY($1)`
)

// DefaultPerPage bounds record listing when the client does not choose one.
const DefaultPerPage = 10

// RecordStore persists and queries saved form snapshots.
type RecordStore struct {
	db     *database.PostgresClient
	logger logger.Logger
}

func NewRecordStore(db *database.PostgresClient, log logger.Logger) *RecordStore {
	return &RecordStore{db: db, logger: log}
}

// EnsureSchema creates the records table when it does not exist yet.
func (s *RecordStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTableSQL); err != nil {
		return errors.NewRecordSaveFailedError(err)
	}
	return nil
}

// Save inserts a snapshot and returns the stored record. The caller supplies
// the raw payload; name and code are denormalized for listing.
func (s *RecordStore) Save(ctx context.Context, projectName, businessCode string, payload []byte) (models.Record, error) {
	rec := models.Record{
		ID:           uuid.New().String(),
		ProjectName:  projectName,
		BusinessCode: businessCode,
		Payload:      payload,
	}

	err := s.db.QueryRow(ctx, insertRecordSQL, rec.ID, rec.ProjectName, rec.BusinessCode, rec.Payload).
		Scan(&rec.CreatedAt)
	if err != nil {
		return models.Record{}, errors.NewRecordSaveFailedError(err)
	}

	metrics.RecordsSaved.Inc()
	s.logger.Info("record saved", map[string]interface{}{
		"recordId":    rec.ID,
		"projectName": rec.ProjectName,
	})
	return rec, nil
}

// List returns one page of records, newest first, optionally bounded to a
// creation-date range.
func (s *RecordStore) List(ctx context.Context, q models.ListQuery) (models.RecordPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	start := nullableDate(q.StartDate)
	end := nullableDate(q.EndDate)

	var total int
	if err := s.db.QueryRow(ctx, countRecordsSQL, start, end).Scan(&total); err != nil {
		return models.RecordPage{}, errors.NewRecordQueryFailedError(err)
	}

	totalPages := (total + q.PerPage - 1) / q.PerPage
	if totalPages < 1 {
		totalPages = 1
	}
	if q.Page > totalPages {
		q.Page = totalPages
	}
	offset := (q.Page - 1) * q.PerPage

	rows, err := s.db.Query(ctx, listRecordsSQL, start, end, q.PerPage, offset)
	if err != nil {
		return models.RecordPage{}, errors.NewRecordQueryFailedError(err)
	}
	defer rows.Close()

	page := models.RecordPage{
		Records:     []models.Record{},
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasPrev:     q.Page > 1,
		HasNext:     q.Page < totalPages,
	}
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.ProjectName, &rec.BusinessCode, &rec.CreatedAt); err != nil {
			return models.RecordPage{}, errors.NewRecordQueryFailedError(err)
		}
		page.Records = append(page.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return models.RecordPage{}, errors.NewRecordQueryFailedError(err)
	}
	return page, nil
}

// FetchByIDs loads full records, payload included, for an export batch.
func (s *RecordStore) FetchByIDs(ctx context.Context, ids []string) ([]models.Record, error) {
	rows, err := s.db.Query(ctx, fetchByIDsSQL, pq.Array(ids))
	if err != nil {
		return nil, errors.NewRecordQueryFailedError(err)
	}
	defer rows.Close()
	return scanFullRecords(rows)
}

// FetchRange loads full records created inside the inclusive date range.
// Empty bounds are open-ended.
func (s *RecordStore) FetchRange(ctx context.Context, startDate, endDate string) ([]models.Record, error) {
	rows, err := s.db.Query(ctx, fetchRangeSQL, nullableDate(startDate), nullableDate(endDate))
	if err != nil {
		return nil, errors.NewRecordQueryFailedError(err)
	}
	defer rows.Close()
	return scanFullRecords(rows)
}

// Delete removes one record. Deleting an unknown id is an error.
func (s *RecordStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.Exec(ctx, deleteRecordSQL, id)
	if err != nil {
		return errors.NewRecordDeleteFailedError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.NewRecordDeleteFailedError(err)
	}
	if affected == 0 {
		return errors.NewRecordNotFoundError(id)
	}

	metrics.RecordsDeleted.Inc()
	return nil
}

// DeleteBatch removes the given ids and reports how many rows went away.
// Unknown ids are skipped silently.
func (s *RecordStore) DeleteBatch(ctx context.Context, ids []string) (int64, error) {
	res, err := s.db.Exec(ctx, deleteBatchSQL, pq.Array(ids))
	if err != nil {
		return 0, errors.NewRecordDeleteFailedError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewRecordDeleteFailedError(err)
	}

	metrics.RecordsDeleted.Add(float64(affected))
	return affected, nil
}

func scanFullRecords(rows *sql.Rows) ([]models.Record, error) {
	var out []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.ProjectName, &rec.BusinessCode, &rec.Payload, &rec.CreatedAt); err != nil {
			return nil, errors.NewRecordQueryFailedError(err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewRecordQueryFailedError(err)
	}
	return out, nil
}

// nullableDate maps "" to SQL NULL so the range predicates collapse.
func nullableDate(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
