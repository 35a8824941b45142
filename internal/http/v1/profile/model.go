package profile

import "github.com/lingopeer/lingopeer-api/internal/platform/timeutil"

// Profile represents a user profile response.
type Profile struct {
	UserID          string        `json:"user_id"             example:"user-123"`
	Email           string        `json:"email"               example:"maria@example.com"`
	FirstName       string        `json:"first_name"          example:"Maria"`
	LastName        string        `json:"last_name"           example:"Silva"`
	Level           string        `json:"level"               example:"intermediate"`
	TargetLanguages []string      `json:"target_languages"    example:"German,Japanese"`
	NativeLanguage  string        `json:"native_language"     example:"Portuguese"`
	Bio             string        `json:"bio"                 example:"Learning German for work"`
	PictureURL      *string       `json:"profile_picture_url" example:"https://example.com/avatar.png"`
	CreatedAt       timeutil.Time `json:"created_at"          example:"2026-01-15T10:30:00.000Z"`
	UpdatedAt       timeutil.Time `json:"updated_at"          example:"2026-01-15T10:30:00.000Z"`
}
