package user

import "time"

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	CreatedAt    time.Time `json:"createdAt"`
}

// Record is the stored body of a user document. Password only ever holds a
// bcrypt hash.
type Record struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func FromRecord(id string, createdAt time.Time, r Record) User {
	return User{
		ID:           id,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.Password,
		CreatedAt:    createdAt,
	}
}
