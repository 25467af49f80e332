package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
