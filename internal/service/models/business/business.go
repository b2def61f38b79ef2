package business

import "time"

// Business represents a registered customer business. New signups start
// unapproved and are flipped by an administrator.
type Business struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	BusinessType string
	Address      string
	Approved     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
