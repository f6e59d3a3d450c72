package access

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"gatelog/internal/platform/querier"
)

// Store is the ledger's persistence contract. The pgx implementation below is
// the production store; tests substitute in-memory fakes.
type Store interface {
	Insert(ctx context.Context, rec Record) error
	ListAll(ctx context.Context) ([]Record, error)
	MostRecent(ctx context.Context) (Record, error)
	OldestDate(ctx context.Context) (time.Time, bool, error)
	DeleteAll(ctx context.Context) error
}

type PGStore struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Insert(ctx context.Context, rec Record) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO access_log (person_name, badge_id, granted, occurred_on, occurred_at)
    VALUES ($1,$2,$3,$4,$5)
  `, rec.PersonName, rec.BadgeID, rec.Granted, rec.OccurredOn, rec.OccurredAt)
	return err
}

func (s *PGStore) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, person_name, badge_id, granted, occurred_on, occurred_at
    FROM access_log
    ORDER BY occurred_on DESC, occurred_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.PersonName, &rec.BadgeID, &rec.Granted, &rec.OccurredOn, &rec.OccurredAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *PGStore) MostRecent(ctx context.Context) (Record, error) {
	var rec Record
	err := s.DB.QueryRow(ctx, `
    SELECT id, person_name, badge_id, granted, occurred_on, occurred_at
    FROM access_log
    ORDER BY occurred_on DESC, occurred_at DESC
    LIMIT 1
  `).Scan(&rec.ID, &rec.PersonName, &rec.BadgeID, &rec.Granted, &rec.OccurredOn, &rec.OccurredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNoRecords
	}
	return rec, err
}

func (s *PGStore) OldestDate(ctx context.Context) (time.Time, bool, error) {
	var oldest time.Time
	err := s.DB.QueryRow(ctx, `
    SELECT occurred_on
    FROM access_log
    ORDER BY occurred_on ASC, occurred_at ASC
    LIMIT 1
  `).Scan(&oldest)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return oldest, true, nil
}

func (s *PGStore) DeleteAll(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM access_log")
	return err
}
