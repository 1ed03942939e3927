package faqrepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/yanqian/internship-faqbot/internal/domain/faq"
)

const schemaSQL = `
	CREATE EXTENSION IF NOT EXISTS vector;
	CREATE TABLE IF NOT EXISTS faq_questions (
		position      INTEGER PRIMARY KEY,
		question_text TEXT NOT NULL,
		normalized    TEXT NOT NULL,
		answer        TEXT NOT NULL,
		semantic_hash BIGINT,
		embedding     vector NOT NULL
	);
	CREATE INDEX IF NOT EXISTS faq_questions_normalized_idx ON faq_questions (normalized);
	CREATE INDEX IF NOT EXISTS faq_questions_semantic_hash_idx ON faq_questions (semantic_hash);
`

// PostgresRepository implements faq.QuestionRepository using pgx and pgvector.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the pgvector extension and the questions table.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure faq schema: %w", err)
	}
	return nil
}

// Replace rewrites the questions table in a single transaction.
func (r *PostgresRepository) Replace(ctx context.Context, records []faq.QuestionRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM faq_questions`); err != nil {
		return err
	}
	for _, record := range records {
		var hashValue any
		if record.SemanticHash != nil {
			hashValue = int64(*record.SemanticHash)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO faq_questions (position, question_text, normalized, answer, semantic_hash, embedding)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, record.ID, record.QuestionText, record.Normalized, record.Answer, hashValue, pgvector.NewVector(record.Vector)); err != nil {
			return fmt.Errorf("insert question %d: %w", record.ID, err)
		}
	}
	return tx.Commit(ctx)
}

// FindExact fetches by normalized question text.
func (r *PostgresRepository) FindExact(ctx context.Context, normalized string) (faq.QuestionRecord, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT position, question_text, normalized, answer, semantic_hash
		FROM faq_questions
		WHERE normalized = $1
		ORDER BY position
		LIMIT 1
	`, normalized)
	if err != nil {
		return faq.QuestionRecord{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return faq.QuestionRecord{}, false, rows.Err()
	}
	record, err := scanQuestionRecord(rows)
	if err != nil {
		return faq.QuestionRecord{}, false, err
	}
	return record, true, rows.Err()
}

// FindBySemanticHash fetches by deterministic hash.
func (r *PostgresRepository) FindBySemanticHash(ctx context.Context, hash uint64) (faq.QuestionRecord, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT position, question_text, normalized, answer, semantic_hash
		FROM faq_questions
		WHERE semantic_hash = $1
		ORDER BY position
		LIMIT 1
	`, int64(hash))
	if err != nil {
		return faq.QuestionRecord{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return faq.QuestionRecord{}, false, rows.Err()
	}
	record, err := scanQuestionRecord(rows)
	if err != nil {
		return faq.QuestionRecord{}, false, err
	}
	return record, true, rows.Err()
}

// FindNearest returns the closest pgvector match by cosine distance.
func (r *PostgresRepository) FindNearest(ctx context.Context, vector []float32) (faq.SimilarityMatch, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT position, question_text, normalized, answer, semantic_hash, 1 - (embedding <=> $1) AS score
		FROM faq_questions
		ORDER BY embedding <=> $1, position
		LIMIT 1
	`, pgvector.NewVector(vector))
	if err != nil {
		return faq.SimilarityMatch{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return faq.SimilarityMatch{}, false, rows.Err()
	}
	var score sql.NullFloat64
	record, err := scanQuestionRecord(rows, &score)
	if err != nil {
		return faq.SimilarityMatch{}, false, err
	}
	match := faq.SimilarityMatch{
		Question: record,
		Score:    score.Float64,
	}
	return match, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestionRecord(row rowScanner, extras ...any) (faq.QuestionRecord, error) {
	var (
		record   faq.QuestionRecord
		semantic sql.NullInt64
	)
	args := []any{&record.ID, &record.QuestionText, &record.Normalized, &record.Answer, &semantic}
	args = append(args, extras...)
	if err := row.Scan(args...); err != nil {
		return faq.QuestionRecord{}, err
	}
	if semantic.Valid {
		hash := uint64(semantic.Int64)
		record.SemanticHash = &hash
	}
	return record, nil
}

var _ faq.QuestionRepository = (*PostgresRepository)(nil)
