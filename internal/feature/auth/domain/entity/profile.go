package entity

// SSOProfile is the user payload the campus SSO portal returns on a
// successful authentication. Every field except the success of the request
// itself is optional; the reconciliation flow falls back to locally stored
// values when a field is absent.
type SSOProfile struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
	Role  string  `json:"role"`
	Major *string `json:"major"`
	Year  *int    `json:"year"`
}
