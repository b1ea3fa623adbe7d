// Package store persists the assessment catalog and the query log in MySQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/catalog"
	"github.com/talentsift/shl-recommender/internal/recommend"
)

// ErrNotFound is returned by point lookups when no row matches.
var ErrNotFound = errors.New("not found")

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = time.Hour
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS assessments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		url VARCHAR(512) NOT NULL,
		description TEXT,
		remote_testing VARCHAR(8) NOT NULL DEFAULT 'No',
		adaptive_support VARCHAR(8) NOT NULL DEFAULT 'No',
		duration VARCHAR(64) NOT NULL DEFAULT 'Varies',
		test_type VARCHAR(64) NOT NULL DEFAULT 'Unknown',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_assessment_url (url)
	)`,
	`CREATE TABLE IF NOT EXISTS queries (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		query_text TEXT NOT NULL,
		query_kind VARCHAR(8) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS query_recommendations (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		query_id BIGINT NOT NULL,
		assessment_id BIGINT NOT NULL,
		relevance_score DOUBLE NOT NULL,
		` + "`rank`" + ` INT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_query_recommendations_query (query_id)
	)`,
}

// Store wraps the MySQL connection pool.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// New opens a pooled connection to MySQL. The DSN should carry
// parseTime=true so timestamps scan into time.Time.
func New(dsn string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// NewWithDB wraps an existing connection, used by tests.
func NewWithDB(db *sql.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InitSchema creates the tables when they do not exist yet.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// SaveQuery records a query and its ranked recommendation list in one
// transaction. Assessments are deduplicated with an upsert on the unique URL
// key, so saving the same list twice never creates duplicate records. Ranks
// are a contiguous 1-based sequence matching list order.
func (s *Store) SaveQuery(ctx context.Context, text, kind string, recs []*recommend.Recommendation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO queries (query_text, query_kind) VALUES (?, ?)`,
		text, kind,
	)
	if err != nil {
		return fmt.Errorf("insert query: %w", err)
	}

	queryID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, rec := range recs {
		assessmentID, err := upsertAssessment(ctx, tx, rec.Assessment)
		if err != nil {
			return fmt.Errorf("upsert assessment %q: %w", rec.Assessment.Name, err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO query_recommendations (query_id, assessment_id, relevance_score, `rank`) VALUES (?, ?, ?, ?)",
			queryID, assessmentID, rec.Score, i+1,
		)
		if err != nil {
			return fmt.Errorf("insert recommendation: %w", err)
		}
	}

	return tx.Commit()
}

// SeedAssessments upserts a scraped catalog into the assessments table.
func (s *Store) SeedAssessments(ctx context.Context, assessments *catalog.Assessments) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range assessments.Items {
		if _, err := upsertAssessment(ctx, tx, item); err != nil {
			return fmt.Errorf("upsert assessment %q: %w", item.Name, err)
		}
	}

	return tx.Commit()
}

// upsertAssessment inserts the record or reuses the existing row with the
// same URL, returning its id either way. LAST_INSERT_ID(id) makes the
// duplicate path report the existing id through LastInsertId.
func upsertAssessment(ctx context.Context, tx *sql.Tx, a *catalog.Assessment) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO assessments (name, url, description, remote_testing, adaptive_support, duration, test_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), description = VALUES(description)`,
		a.Name, a.URL, a.Description, a.RemoteTesting, a.AdaptiveSupport, a.Duration, a.TestType,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const assessmentColumns = `id, name, url, description, remote_testing, adaptive_support, duration, test_type`

// ListAssessments returns every catalog record, oldest first.
func (s *Store) ListAssessments(ctx context.Context) (*catalog.Assessments, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+assessmentColumns+` FROM assessments ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	assessments := &catalog.Assessments{}
	for rows.Next() {
		item, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments.Append(item)
	}

	return assessments, rows.Err()
}

// GetAssessment is a point lookup by id.
func (s *Store) GetAssessment(ctx context.Context, id int64) (*catalog.Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE id = ?`, id,
	)

	item, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}

	return item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row scanner) (*catalog.Assessment, error) {
	var a catalog.Assessment
	var description sql.NullString
	err := row.Scan(&a.ID, &a.Name, &a.URL, &description,
		&a.RemoteTesting, &a.AdaptiveSupport, &a.Duration, &a.TestType)
	if err != nil {
		return nil, err
	}
	a.Description = description.String
	return &a, nil
}
