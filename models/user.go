package models

import "time"

// User represents an account entity used for authentication and ownership of
// recipes, tags and ingredients.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used as the owner key of every
	// user-scoped record.
	UserID int64 `json:"-"`

	// Email is the unique login identifier. It is stored lower-cased.
	Email string `json:"email"`

	// Name is the display name of the user. May be empty.
	Name string `json:"name"`

	// Password carries the plaintext password on the way in (registration,
	// login, profile update). It is never persisted and never serialized back.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	PasswordHash string `json:"-"`

	IsActive    bool `json:"-"`
	IsStaff     bool `json:"-"`
	IsSuperuser bool `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Profile returns the public representation of the user.
func (u User) Profile() Profile {
	return Profile{Email: u.Email, Name: u.Name}
}

// Profile is the only user representation returned by the API.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ProfileUpdate describes a partial profile update. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Credentials is the body of a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
