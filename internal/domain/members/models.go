package members

import "time"

// Member is one enrolled person: the registry maps a badge to a name and
// carries the credentials used to sign in to the management UI.
type Member struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Level        int       `json:"level"`
	Registration string    `json:"registration"`
	BadgeID      string    `json:"badgeId"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateInput carries the fields accepted on enrollment.
type CreateInput struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Level        int    `json:"level"`
	Registration string `json:"registration"`
	BadgeID      string `json:"badgeId"`
}

// UpdateInput carries the optional fields accepted on edit; nil means keep.
type UpdateInput struct {
	Name         *string `json:"name"`
	Role         *string `json:"role"`
	Level        *int    `json:"level"`
	Registration *string `json:"registration"`
	BadgeID      *string `json:"badgeId"`
}
