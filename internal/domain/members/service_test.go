package members

import (
	"context"
	"errors"
	"testing"
	"time"

	"gatelog/internal/domain/auth"
)

type fakeStore struct {
	members map[string]Member
}

func newFakeStore() *fakeStore {
	return &fakeStore{members: map[string]Member{}}
}

func (f *fakeStore) Insert(ctx context.Context, member Member) error {
	member.CreatedAt = time.Now()
	f.members[member.ID] = member
	return nil
}

func (f *fakeStore) Update(ctx context.Context, member Member) error {
	if _, ok := f.members[member.ID]; !ok {
		return ErrNotFound
	}
	f.members[member.ID] = member
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.members[id]; !ok {
		return ErrNotFound
	}
	delete(f.members, id)
	return nil
}

func (f *fakeStore) Get(ctx context.Context, id string) (Member, error) {
	member, ok := f.members[id]
	if !ok {
		return Member{}, ErrNotFound
	}
	return member, nil
}

func (f *fakeStore) findBy(match func(Member) bool) (Member, error) {
	for _, member := range f.members {
		if match(member) {
			return member, nil
		}
	}
	return Member{}, ErrNotFound
}

func (f *fakeStore) GetByBadge(ctx context.Context, badgeID string) (Member, error) {
	return f.findBy(func(m Member) bool { return m.BadgeID == badgeID })
}

func (f *fakeStore) GetByRegistration(ctx context.Context, registration string) (Member, error) {
	return f.findBy(func(m Member) bool { return m.Registration == registration })
}

func (f *fakeStore) GetByName(ctx context.Context, name string) (Member, error) {
	return f.findBy(func(m Member) bool { return m.Name == name })
}

func (f *fakeStore) List(ctx context.Context) ([]Member, error) {
	var out []Member
	for _, member := range f.members {
		out = append(out, member)
	}
	return out, nil
}

func (f *fakeStore) UpdatePassword(ctx context.Context, id, hash string) error {
	member, ok := f.members[id]
	if !ok {
		return ErrNotFound
	}
	member.PasswordHash = hash
	f.members[id] = member
	return nil
}

func validInput() CreateInput {
	return CreateInput{Name: "Ana", Role: "member", Registration: "123456789", BadgeID: "54321"}
}

func TestCreateMember(t *testing.T) {
	service := NewService(newFakeStore())

	member, err := service.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if member.ID == "" {
		t.Fatal("expected generated id")
	}
	if member.Level != auth.LevelMember {
		t.Fatalf("expected default member level, got %d", member.Level)
	}
	// Initial password is the registration number.
	if err := auth.CheckPassword(member.PasswordHash, "123456789"); err != nil {
		t.Fatalf("initial password should be the registration: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	service := NewService(newFakeStore())
	ctx := context.Background()

	cases := []struct {
		name string
		mod  func(*CreateInput)
		want error
	}{
		{"missing name", func(in *CreateInput) { in.Name = "" }, ErrMissingFields},
		{"missing role", func(in *CreateInput) { in.Role = " " }, ErrMissingFields},
		{"short registration", func(in *CreateInput) { in.Registration = "12345" }, ErrInvalidRegistration},
		{"non-digit registration", func(in *CreateInput) { in.Registration = "12345678a" }, ErrInvalidRegistration},
		{"short badge", func(in *CreateInput) { in.BadgeID = "123" }, ErrInvalidBadge},
		{"non-digit badge", func(in *CreateInput) { in.BadgeID = "12a45" }, ErrInvalidBadge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mod(&in)
			if _, err := service.Create(ctx, in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateUniqueness(t *testing.T) {
	service := NewService(newFakeStore())
	ctx := context.Background()

	if _, err := service.Create(ctx, validInput()); err != nil {
		t.Fatalf("create error: %v", err)
	}

	dup := validInput()
	dup.BadgeID = "11111"
	if _, err := service.Create(ctx, dup); !errors.Is(err, ErrRegistrationTaken) {
		t.Fatalf("expected ErrRegistrationTaken, got %v", err)
	}

	dup = validInput()
	dup.Registration = "987654321"
	if _, err := service.Create(ctx, dup); !errors.Is(err, ErrBadgeTaken) {
		t.Fatalf("expected ErrBadgeTaken, got %v", err)
	}
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	service := NewService(newFakeStore())
	ctx := context.Background()

	member, err := service.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	role := "treasurer"
	updated, err := service.Update(ctx, member.ID, UpdateInput{Role: &role})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if updated.Role != "treasurer" {
		t.Fatalf("role not updated: %+v", updated)
	}
	if updated.Name != member.Name || updated.Registration != member.Registration {
		t.Fatal("unset fields must be kept")
	}
}

func TestUpdateAllowsKeepingOwnBadge(t *testing.T) {
	service := NewService(newFakeStore())
	ctx := context.Background()

	member, err := service.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	// Re-submitting the member's own badge id is not a conflict.
	badge := member.BadgeID
	if _, err := service.Update(ctx, member.ID, UpdateInput{BadgeID: &badge}); err != nil {
		t.Fatalf("update with own badge failed: %v", err)
	}
}

func TestDeleteUnknownMember(t *testing.T) {
	service := NewService(newFakeStore())

	if err := service.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	service := NewService(newFakeStore())
	ctx := context.Background()

	member, err := service.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := service.ChangePassword(ctx, member.ID, ""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
	if err := service.ChangePassword(ctx, member.ID, "new-secret"); err != nil {
		t.Fatalf("change password error: %v", err)
	}

	stored, err := service.Get(ctx, member.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if err := auth.CheckPassword(stored.PasswordHash, "new-secret"); err != nil {
		t.Fatalf("new password should match: %v", err)
	}
}

func TestFindByBadge(t *testing.T) {
	service := NewService(newFakeStore())
	ctx := context.Background()

	member, err := service.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	found, err := service.FindByBadge(ctx, member.BadgeID)
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if found.ID != member.ID {
		t.Fatal("wrong member resolved")
	}

	if _, err := service.FindByBadge(ctx, "00000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
