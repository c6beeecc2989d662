package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vidsum-backend/internal/models"
)

// ErrNotFound is returned for get/delete on an unknown record id.
var ErrNotFound = errors.New("summary record not found")

type SummaryRepo struct {
	pool *pgxpool.Pool
}

func NewSummaryRepo(pool *pgxpool.Pool) *SummaryRepo {
	return &SummaryRepo{pool: pool}
}

func (r *SummaryRepo) Create(ctx context.Context, rec *models.SummaryRecord) error {
	rec.ID = uuid.New()

	var sentimentJSON []byte
	if rec.Sentiment != nil {
		sentimentJSON, _ = json.Marshal(rec.Sentiment)
	}
	if rec.Keywords == nil {
		rec.Keywords = []string{}
	}

	query := `INSERT INTO summaries (id, title, author, length_seconds, views, thumbnail, transcript, summary, sentiment, keywords)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		rec.ID, rec.Metadata.Title, rec.Metadata.Author, rec.Metadata.Length,
		rec.Metadata.Views, rec.Metadata.Thumbnail, rec.Transcript, rec.Summary,
		sentimentJSON, rec.Keywords,
	).Scan(&rec.CreatedAt)
}

func (r *SummaryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SummaryRecord, error) {
	query := `SELECT id, title, author, length_seconds, views, thumbnail, transcript, summary, sentiment, keywords, created_at
		FROM summaries WHERE id = $1`

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *SummaryRepo) List(ctx context.Context) ([]*models.SummaryRecord, error) {
	query := `SELECT id, title, author, length_seconds, views, thumbnail, transcript, summary, sentiment, keywords, created_at
		FROM summaries ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*models.SummaryRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *SummaryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM summaries WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (*models.SummaryRecord, error) {
	rec := &models.SummaryRecord{}
	var sentimentJSON []byte

	err := row.Scan(
		&rec.ID, &rec.Metadata.Title, &rec.Metadata.Author, &rec.Metadata.Length,
		&rec.Metadata.Views, &rec.Metadata.Thumbnail, &rec.Transcript, &rec.Summary,
		&sentimentJSON, &rec.Keywords, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(sentimentJSON) > 0 {
		var s models.SentimentResult
		if err := json.Unmarshal(sentimentJSON, &s); err != nil {
			return nil, fmt.Errorf("corrupt sentiment column for %s: %w", rec.ID, err)
		}
		rec.Sentiment = &s
	}

	return rec, nil
}
