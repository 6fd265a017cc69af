package domain

import "time"

// Gender mirrors the values collected at sign-up.
type Gender string

const (
	GenderFemale Gender = "f"
	GenderMale   Gender = "m"
)

// User is the domain model for registered members.
type User struct {
	ID           string
	PasswordHash string
	ProfileURL   string
	Nickname     string
	Gender       Gender
	Birth        time.Time
	Height       float32
	Weight       float32
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
