package model

import "time"

// Account is an identity-provider record. The secret hash is written once
// at registration and never verified by the core; login only checks that
// the account exists.
type Account struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	SecretHash string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
