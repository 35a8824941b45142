package profile

import (
	"fmt"
	"time"
)

// Coerce converts a loosely-shaped stored record into a fully-populated
// Profile. It never fails: missing text becomes "", a missing or unknown
// level becomes beginner, missing languages become an empty set. This is
// the single lenient-read boundary against backend schema drift; every
// other reader in this package parses strictly.
func Coerce(userID string, data map[string]any, languages []string) *Profile {
	p := &Profile{
		UserID:          userID,
		Email:           coerceString(data["email"]),
		FirstName:       coerceString(data["first_name"]),
		LastName:        coerceString(data["last_name"]),
		Level:           LevelBeginner,
		TargetLanguages: []string{},
		NativeLanguage:  coerceString(data["native_language"]),
		Bio:             coerceString(data["bio"]),
		CreatedAt:       coerceTime(data["created_at"]),
		UpdatedAt:       coerceTime(data["updated_at"]),
	}

	switch Level(coerceString(data["level"])) {
	case LevelIntermediate:
		p.Level = LevelIntermediate
	case LevelAdvanced:
		p.Level = LevelAdvanced
	}

	for _, lang := range languages {
		if lang != "" {
			p.TargetLanguages = append(p.TargetLanguages, lang)
		}
	}

	if s := coerceString(data["profile_picture_url"]); s != "" {
		p.PictureURL = &s
	}

	return p
}

func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}

func coerceTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}
		}
		return parsed
	default:
		return time.Time{}
	}
}
