package discover

import profilesvc "github.com/lingopeer/lingopeer-api/internal/service/profile"

// Partner is a profile summary shown in partner search results.
type Partner struct {
	UserID          string   `json:"user_id"             example:"user-123"`
	FirstName       string   `json:"first_name"          example:"Maria"`
	LastName        string   `json:"last_name"           example:"Silva"`
	Level           string   `json:"level"               example:"intermediate"`
	TargetLanguages []string `json:"target_languages"    example:"German,Japanese"`
	NativeLanguage  string   `json:"native_language"     example:"Portuguese"`
	Bio             string   `json:"bio"                 example:"Learning German for work"`
	PictureURL      *string  `json:"profile_picture_url" example:"https://example.com/avatar.png"`
}

// ListData is the partner list response body.
type ListData struct {
	Partners []Partner `json:"partners"`
	Total    int       `json:"total" example:"42"`
}

func toPartner(p *profilesvc.Profile) Partner {
	return Partner{
		UserID:          p.UserID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Level:           string(p.Level),
		TargetLanguages: p.TargetLanguages,
		NativeLanguage:  p.NativeLanguage,
		Bio:             p.Bio,
		PictureURL:      p.PictureURL,
	}
}
