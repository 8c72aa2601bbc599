package profile

import (
	"context"

	"fintalkweb/internal/backend"
)

// AccountClient is the slice of the backend API the profile editor consumes.
type AccountClient interface {
	GetProfile(ctx context.Context) (backend.Profile, error)
	UpdateProfile(ctx context.Context, updates map[string]any) (backend.Profile, error)
}

// Form carries the editable profile fields. Nil means "leave untouched" so a
// submit only patches what the user actually changed.
type Form struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	Location  *string `json:"location" validate:"omitempty,max=100"`
	Website   *string `json:"website" validate:"omitempty,url,max=200"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

// updates flattens the set fields into the partial-update payload.
func (f Form) updates() map[string]any {
	out := make(map[string]any)
	if f.FirstName != nil {
		out["first_name"] = *f.FirstName
	}
	if f.LastName != nil {
		out["last_name"] = *f.LastName
	}
	if f.Bio != nil {
		out["bio"] = *f.Bio
	}
	if f.Location != nil {
		out["location"] = *f.Location
	}
	if f.Website != nil {
		out["website"] = *f.Website
	}
	if f.AvatarURL != nil {
		out["avatar_url"] = *f.AvatarURL
	}
	return out
}
