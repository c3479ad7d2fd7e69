package models

// User represents a registered user account as stored in the user collection.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// FullName is the display name entered at signup.
	FullName string `json:"fullName"`

	// Email is the user's email address (unique across the collection).
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"passwordHash"`

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64 `json:"createdAt"`
}

// SessionUser is a User without its credential.
// It is the value held as the current session and returned to callers.
type SessionUser struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
}

// Public strips the credential from u.
func (u *User) Public() *SessionUser {
	return &SessionUser{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
