package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/talentsift/shl-recommender/internal/catalog"
)

const defaultRecentLimit = 20

// QueryRecord is one logged query with its ranked recommendations.
type QueryRecord struct {
	ID              int64               `json:"id"`
	Text            string              `json:"query_text"`
	Kind            string              `json:"query_kind"`
	CreatedAt       time.Time           `json:"created_at"`
	Recommendations []*RankedAssessment `json:"recommendations"`
}

// RankedAssessment is an assessment at its position in a logged ranking.
type RankedAssessment struct {
	Assessment *catalog.Assessment `json:"assessment"`
	Rank       int                 `json:"rank"`
	Score      float64             `json:"relevance_score"`
}

// RecentQueries returns the newest logged queries, each with its full
// recommendation list in rank order.
func (s *Store) RecentQueries(ctx context.Context, limit int) ([]*QueryRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query_text, query_kind, created_at
		 FROM queries ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer rows.Close()

	var records []*QueryRecord
	for rows.Next() {
		var rec QueryRecord
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.Kind, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rec := range records {
		ranked, err := s.queryRecommendations(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Recommendations = ranked
	}

	return records, nil
}

func (s *Store) queryRecommendations(ctx context.Context, queryID int64) ([]*RankedAssessment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT qr.`rank`, qr.relevance_score, a.id, a.name, a.url, a.description, "+
			"a.remote_testing, a.adaptive_support, a.duration, a.test_type "+
			"FROM query_recommendations qr "+
			"JOIN assessments a ON a.id = qr.assessment_id "+
			"WHERE qr.query_id = ? ORDER BY qr.`rank`",
		queryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recommendations for query %d: %w", queryID, err)
	}
	defer rows.Close()

	var ranked []*RankedAssessment
	for rows.Next() {
		var entry RankedAssessment
		var a catalog.Assessment
		var description sql.NullString
		err := rows.Scan(&entry.Rank, &entry.Score, &a.ID, &a.Name, &a.URL,
			&description, &a.RemoteTesting, &a.AdaptiveSupport, &a.Duration, &a.TestType)
		if err != nil {
			return nil, err
		}
		a.Description = description.String
		entry.Assessment = &a
		ranked = append(ranked, &entry)
	}

	return ranked, rows.Err()
}
