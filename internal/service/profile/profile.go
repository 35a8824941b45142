// Package profile holds the language-learning profile domain: the public
// profile shape, the store contract, and its Firestore and in-memory
// implementations.
package profile

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors returned by Service implementations.
var (
	ErrNotFound      = errors.New("profile: not found")
	ErrAlreadyExists = errors.New("profile: already exists")
)

// Level is a learner's self-assessed proficiency.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Profile is a user's language-learning record.
type Profile struct {
	UserID          string
	Email           string
	FirstName       string
	LastName        string
	Level           Level
	TargetLanguages []string
	NativeLanguage  string
	Bio             string
	PictureURL      *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateParams carries a validated create payload.
// String fields are trimmed by the store; Bio is stored as given.
type CreateParams struct {
	Email           string
	FirstName       string
	LastName        string
	Level           Level
	TargetLanguages []string
	NativeLanguage  string
	Bio             string
}

// UpdateParams carries a validated partial update. Nil pointers leave the
// field untouched. A non-nil TargetLanguages replaces the whole set; an
// empty slice clears it. ClearPicture removes the picture URL.
type UpdateParams struct {
	Email           *string
	FirstName       *string
	LastName        *string
	Level           *Level
	TargetLanguages []string
	NativeLanguage  *string
	Bio             *string
	PictureURL      *string
	ClearPicture    bool
}

// IsEmpty reports whether the update touches nothing.
func (p UpdateParams) IsEmpty() bool {
	return p.Email == nil &&
		p.FirstName == nil &&
		p.LastName == nil &&
		p.Level == nil &&
		p.TargetLanguages == nil &&
		p.NativeLanguage == nil &&
		p.Bio == nil &&
		p.PictureURL == nil &&
		!p.ClearPicture
}

// Service is the profile store contract.
type Service interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Profile, error)
	Get(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error)
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context) ([]*Profile, error)
}
