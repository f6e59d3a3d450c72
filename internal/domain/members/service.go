package members

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"gatelog/internal/domain/auth"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Service enforces the registry rules: 9-digit registrations, 5-digit badge
// ids, both unique across the club. New members sign in with their
// registration number until they change the password.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Member, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Role) == "" ||
		in.Registration == "" || in.BadgeID == "" {
		return Member{}, ErrMissingFields
	}
	if err := validateRegistration(in.Registration); err != nil {
		return Member{}, err
	}
	if err := validateBadge(in.BadgeID); err != nil {
		return Member{}, err
	}
	if err := s.checkUnique(ctx, in.Registration, in.BadgeID, ""); err != nil {
		return Member{}, err
	}

	hash, err := auth.HashPassword(in.Registration)
	if err != nil {
		return Member{}, err
	}

	level := in.Level
	if level == 0 {
		level = auth.LevelMember
	}
	member := Member{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Role:         in.Role,
		Level:        level,
		Registration: in.Registration,
		BadgeID:      in.BadgeID,
		PasswordHash: hash,
	}
	if err := s.store.Insert(ctx, member); err != nil {
		return Member{}, err
	}
	return s.store.GetByRegistration(ctx, in.Registration)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Member, error) {
	member, err := s.store.Get(ctx, id)
	if err != nil {
		return Member{}, err
	}

	if in.Registration != nil {
		if err := validateRegistration(*in.Registration); err != nil {
			return Member{}, err
		}
		member.Registration = *in.Registration
	}
	if in.BadgeID != nil {
		if err := validateBadge(*in.BadgeID); err != nil {
			return Member{}, err
		}
		member.BadgeID = *in.BadgeID
	}
	if in.Registration != nil || in.BadgeID != nil {
		if err := s.checkUnique(ctx, member.Registration, member.BadgeID, member.ID); err != nil {
			return Member{}, err
		}
	}
	if in.Name != nil {
		member.Name = *in.Name
	}
	if in.Role != nil {
		member.Role = *in.Role
	}
	if in.Level != nil {
		member.Level = *in.Level
	}

	if err := s.store.Update(ctx, member); err != nil {
		return Member{}, err
	}
	return member, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (Member, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Member, error) {
	return s.store.List(ctx)
}

// FindByBadge resolves a badge scan to the enrolled member.
func (s *Service) FindByBadge(ctx context.Context, badgeID string) (Member, error) {
	return s.store.GetByBadge(ctx, badgeID)
}

func (s *Service) FindByName(ctx context.Context, name string) (Member, error) {
	return s.store.GetByName(ctx, name)
}

func (s *Service) FindByRegistration(ctx context.Context, registration string) (Member, error) {
	return s.store.GetByRegistration(ctx, registration)
}

func (s *Service) ChangePassword(ctx context.Context, id, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, id, hash)
}

func (s *Service) checkUnique(ctx context.Context, registration, badgeID, selfID string) error {
	if existing, err := s.store.GetByRegistration(ctx, registration); err == nil {
		if existing.ID != selfID {
			return ErrRegistrationTaken
		}
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	if existing, err := s.store.GetByBadge(ctx, badgeID); err == nil {
		if existing.ID != selfID {
			return ErrBadgeTaken
		}
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func validateRegistration(registration string) error {
	if len(registration) != 9 || !digitsOnly.MatchString(registration) {
		return ErrInvalidRegistration
	}
	return nil
}

func validateBadge(badgeID string) error {
	if len(badgeID) != 5 || !digitsOnly.MatchString(badgeID) {
		return ErrInvalidBadge
	}
	return nil
}
