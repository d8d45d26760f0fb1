package session

// Identity is the authenticated user's profile as returned by the backend
// login endpoint. It is immutable for the lifetime of the session and
// replaced wholesale on the next login.
type Identity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleCode  string `json:"role_code"`
	Phone     string `json:"phone,omitempty"`
}

// Record pairs the bearer credential with the identity it belongs to.
// The pair is written and cleared atomically; a record with only one half
// is by definition corrupt.
type Record struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
	SavedAt  int64    `json:"saved_at"`
}

// Valid reports whether the record holds a complete credential/identity pair.
func (r *Record) Valid() bool {
	return r != nil && r.Token != "" && r.Identity.Username != ""
}
