package presence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"gatelog/internal/platform/querier"
)

// Store is the ledger's persistence contract.
type Store interface {
	InsertEntry(ctx context.Context, rec Record) error
	CloseEntry(ctx context.Context, personName string, day time.Time, exitedAt time.Time, valid bool) (int64, error)
	FindByDay(ctx context.Context, personName string, day time.Time) (Record, error)
	ListAll(ctx context.Context) ([]Record, error)
	OldestDate(ctx context.Context) (time.Time, bool, error)
	DeleteAll(ctx context.Context) error
}

type PGStore struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) InsertEntry(ctx context.Context, rec Record) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO presence_log (person_name, day, entered_at, entry_valid)
    VALUES ($1,$2,$3,$4)
  `, rec.PersonName, rec.Day, rec.EnteredAt, rec.EntryValid)
	return err
}

// CloseEntry stamps the exit on the person's open interval for the day and
// returns how many rows it touched; zero means there was nothing open.
func (s *PGStore) CloseEntry(ctx context.Context, personName string, day time.Time, exitedAt time.Time, valid bool) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE presence_log
    SET exited_at = $1, exit_valid = $2
    WHERE person_name = $3 AND day = $4 AND exited_at IS NULL
  `, exitedAt, valid, personName, day)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// FindByDay returns the person's latest interval for the day, open or closed.
func (s *PGStore) FindByDay(ctx context.Context, personName string, day time.Time) (Record, error) {
	var rec Record
	err := s.DB.QueryRow(ctx, `
    SELECT id, person_name, day, entered_at, entry_valid, exited_at, exit_valid
    FROM presence_log
    WHERE person_name = $1 AND day = $2
    ORDER BY entered_at DESC
    LIMIT 1
  `, personName, day).Scan(&rec.ID, &rec.PersonName, &rec.Day, &rec.EnteredAt, &rec.EntryValid, &rec.ExitedAt, &rec.ExitValid)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *PGStore) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, person_name, day, entered_at, entry_valid, exited_at, exit_valid
    FROM presence_log
    ORDER BY day DESC, entered_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.PersonName, &rec.Day, &rec.EnteredAt, &rec.EntryValid, &rec.ExitedAt, &rec.ExitValid); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// OldestDate looks across the whole ledger, open and closed intervals alike.
func (s *PGStore) OldestDate(ctx context.Context) (time.Time, bool, error) {
	var oldest time.Time
	err := s.DB.QueryRow(ctx, `
    SELECT day
    FROM presence_log
    ORDER BY day ASC, entered_at ASC
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
	_, err := s.DB.Exec(ctx, "DELETE FROM presence_log")
	return err
}
