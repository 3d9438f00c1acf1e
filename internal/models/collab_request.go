package models

// CollabRequest is the body of a collaboration enquiry.
// Website is a honeypot field that humans never fill in.
type CollabRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Contact    string `json:"contact" validate:"required,max=200"`
	Company    string `json:"company,omitempty" validate:"max=200"`
	Role       string `json:"role" validate:"required,max=100"`
	CollabType string `json:"collabType" validate:"required,max=100"`
	Budget     string `json:"budget,omitempty" validate:"max=100"`
	City       string `json:"city,omitempty" validate:"max=100"`
	Date       string `json:"date,omitempty" validate:"max=50"`
	Links      string `json:"links,omitempty" validate:"max=2000"`
	Message    string `json:"message" validate:"required,max=5000"`
	Website    string `json:"website,omitempty"`
}

// IsSpam reports whether the honeypot field was filled in
func (r *CollabRequest) IsSpam() bool {
	return r.Website != ""
}
