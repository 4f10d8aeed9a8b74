package domain

import "time"

// User is the stable identity behind a session, keyed by email.
// Created lazily on the first authenticated interaction.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
