package discover

// ListInput defines query parameters for listing practice partners.
type ListInput struct {
	Cursor   string `query:"cursor"`
	Limit    int    `query:"limit"    validate:"omitempty,min=1,max=100"`
	Language string `query:"language"`
	Level    string `query:"level"    validate:"omitempty,oneof=beginner intermediate advanced"`
}
