package domain

import "time"

// Admin is a back-office staff account.
type Admin struct {
	ID           string
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
