package models

// CalendarEvent holds the optional inputs of a calendar artifact.
// Empty fields are replaced with defaults by the builder.
type CalendarEvent struct {
	Title       string `query:"title"`
	Date        string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Description string `query:"desc"`
}

// CalendarArtifact is a generated, downloadable calendar document
type CalendarArtifact struct {
	UID               string
	Document          string
	SuggestedFilename string
	MimeType          string
}
