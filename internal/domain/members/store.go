package members

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"gatelog/internal/platform/querier"
)

// Store is the registry's persistence contract.
type Store interface {
	Insert(ctx context.Context, member Member) error
	Update(ctx context.Context, member Member) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Member, error)
	GetByBadge(ctx context.Context, badgeID string) (Member, error)
	GetByRegistration(ctx context.Context, registration string) (Member, error)
	GetByName(ctx context.Context, name string) (Member, error)
	List(ctx context.Context) ([]Member, error)
	UpdatePassword(ctx context.Context, id, hash string) error
}

type PGStore struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *PGStore {
	return &PGStore{DB: db}
}

const memberColumns = "id, name, role, level, registration, badge_id, password_hash, created_at"

func (s *PGStore) Insert(ctx context.Context, member Member) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO members (id, name, role, level, registration, badge_id, password_hash)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, member.ID, member.Name, member.Role, member.Level, member.Registration, member.BadgeID, member.PasswordHash)
	return err
}

func (s *PGStore) Update(ctx context.Context, member Member) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE members
    SET name = $1, role = $2, level = $3, registration = $4, badge_id = $5
    WHERE id = $6
  `, member.Name, member.Role, member.Level, member.Registration, member.BadgeID, member.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM members WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, id string) (Member, error) {
	return s.getBy(ctx, "id", id)
}

func (s *PGStore) GetByBadge(ctx context.Context, badgeID string) (Member, error) {
	return s.getBy(ctx, "badge_id", badgeID)
}

func (s *PGStore) GetByRegistration(ctx context.Context, registration string) (Member, error) {
	return s.getBy(ctx, "registration", registration)
}

func (s *PGStore) GetByName(ctx context.Context, name string) (Member, error) {
	return s.getBy(ctx, "name", name)
}

func (s *PGStore) getBy(ctx context.Context, column, value string) (Member, error) {
	var member Member
	err := s.DB.QueryRow(ctx,
		"SELECT "+memberColumns+" FROM members WHERE "+column+" = $1", value,
	).Scan(&member.ID, &member.Name, &member.Role, &member.Level, &member.Registration, &member.BadgeID, &member.PasswordHash, &member.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Member{}, ErrNotFound
	}
	return member, err
}

func (s *PGStore) List(ctx context.Context) ([]Member, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+memberColumns+" FROM members ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		var member Member
		if err := rows.Scan(&member.ID, &member.Name, &member.Role, &member.Level, &member.Registration, &member.BadgeID, &member.PasswordHash, &member.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, member)
	}
	return out, rows.Err()
}

func (s *PGStore) UpdatePassword(ctx context.Context, id, hash string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE members SET password_hash = $1 WHERE id = $2", hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
