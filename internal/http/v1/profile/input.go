package profile

// Allowed body keys per operation. Any key outside the list fails the whole
// request, independent of other field errors.
var (
	createKeys = []string{
		"user_id", "email", "first_name", "last_name",
		"level", "target_languages", "native_language", "bio",
	}
	updateKeys = []string{
		"email", "first_name", "last_name", "level",
		"target_languages", "native_language", "bio", "profile_picture_url",
	}
)

// CreateInput for POST /profile. Bio may be empty; everything else must be
// non-empty after trimming. Presence of target_languages and bio is checked
// against the raw member map in the handler, since a decoded struct cannot
// tell an absent key from a zero value.
type CreateInput struct {
	UserID          string   `json:"user_id"          validate:"required,notblank"`
	Email           string   `json:"email"            validate:"required,notblank"`
	FirstName       string   `json:"first_name"       validate:"required,notblank"`
	LastName        string   `json:"last_name"        validate:"required,notblank"`
	Level           string   `json:"level"            validate:"required,oneof=beginner intermediate advanced"`
	TargetLanguages []string `json:"target_languages" validate:"omitempty,dive,notblank"`
	NativeLanguage  string   `json:"native_language"  validate:"required,notblank"`
	Bio             string   `json:"bio"`
}

// UpdateInput for PATCH /profile/{user_id}. Only keys present in the body
// are validated and applied; profile_picture_url additionally accepts an
// explicit null to clear the picture.
type UpdateInput struct {
	Email           *string  `json:"email,omitempty"               validate:"omitempty,notblank"`
	FirstName       *string  `json:"first_name,omitempty"          validate:"omitempty,notblank"`
	LastName        *string  `json:"last_name,omitempty"           validate:"omitempty,notblank"`
	Level           *string  `json:"level,omitempty"               validate:"omitempty,oneof=beginner intermediate advanced"`
	TargetLanguages []string `json:"target_languages,omitempty"    validate:"omitempty,dive,notblank"`
	NativeLanguage  *string  `json:"native_language,omitempty"     validate:"omitempty,notblank"`
	Bio             *string  `json:"bio,omitempty"`
	PictureURL      *string  `json:"profile_picture_url,omitempty" validate:"omitempty,notblank"`
}
