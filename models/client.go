package models

// MissingClientFieldsMessage is returned when name or email is absent
const MissingClientFieldsMessage = "Missing required fields: name, email"

// Client represents a client record
type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	AuditFields
}

// ClientForm is the request body for creating a client
type ClientForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks that name and email are present. Email uniqueness and
// format are not enforced.
func (f *ClientForm) Validate() ValidationErrors {
	var errors ValidationErrors

	if f.Name == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "Name is required"})
	}

	if f.Email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "Email is required"})
	}

	return errors
}
