package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samadhi-app/record-service/internal/domain"
)

// RecordRepository encapsulates session report persistence.
type RecordRepository interface {
	Create(ctx context.Context, record *domain.Record) error
	GetByID(ctx context.Context, id int64) (*domain.Record, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Record, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type recordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository instantiates repository.
func NewRecordRepository(pool *pgxpool.Pool) RecordRepository {
	return &recordRepository{pool: pool}
}

func (r *recordRepository) Create(ctx context.Context, record *domain.Record) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertRecord = `
        INSERT INTO records (user_id, youtube_url, duration_sec, score)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertRecord,
		record.UserID,
		record.YoutubeURL,
		record.DurationSec,
		record.Score,
	).Scan(&record.ID, &record.CreatedAt); err != nil {
		return err
	}

	const insertTimeLine = `
        INSERT INTO time_lines (record_id, youtube_start_sec, youtube_end_sec, pose, score, image_url)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	for i := range record.TimeLines {
		tl := &record.TimeLines[i]
		tl.RecordID = record.ID
		if err := tx.QueryRow(ctx, insertTimeLine,
			tl.RecordID,
			tl.YoutubeStartSec,
			tl.YoutubeEndSec,
			tl.Pose,
			tl.Score,
			tl.ImageURL,
		).Scan(&tl.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *recordRepository) GetByID(ctx context.Context, id int64) (*domain.Record, error) {
	const query = `
        SELECT id, user_id, youtube_url, duration_sec, score, created_at
        FROM records WHERE id=$1`

	var record domain.Record
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.UserID,
		&record.YoutubeURL,
		&record.DurationSec,
		&record.Score,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}

	timeLines, err := r.timeLinesFor(ctx, []int64{record.ID})
	if err != nil {
		return nil, err
	}
	record.TimeLines = timeLines[record.ID]
	return &record, nil
}

func (r *recordRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 8
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
        SELECT id, user_id, youtube_url, duration_sec, score, created_at
        FROM records WHERE user_id=$1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	ids := make([]int64, 0, len(records))
	for i := range records {
		ids = append(ids, records[i].ID)
	}
	timeLines, err := r.timeLinesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].TimeLines = timeLines[records[i].ID]
	}
	return records, nil
}

func (r *recordRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM records WHERE user_id=$1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recordRepository) timeLinesFor(ctx context.Context, recordIDs []int64) (map[int64][]domain.TimeLine, error) {
	const query = `
        SELECT id, record_id, youtube_start_sec, youtube_end_sec, pose, score, image_url
        FROM time_lines WHERE record_id = ANY($1)
        ORDER BY youtube_start_sec ASC`

	rows, err := r.pool.Query(ctx, query, recordIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]domain.TimeLine)
	for rows.Next() {
		var tl domain.TimeLine
		if err := rows.Scan(
			&tl.ID,
			&tl.RecordID,
			&tl.YoutubeStartSec,
			&tl.YoutubeEndSec,
			&tl.Pose,
			&tl.Score,
			&tl.ImageURL,
		); err != nil {
			return nil, err
		}
		result[tl.RecordID] = append(result[tl.RecordID], tl)
	}
	return result, rows.Err()
}

func scanRecords(rows pgx.Rows) ([]domain.Record, error) {
	var result []domain.Record
	for rows.Next() {
		var record domain.Record
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.YoutubeURL,
			&record.DurationSec,
			&record.Score,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
