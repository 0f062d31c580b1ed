package domain

import (
	"time"
)

type Role string

const (
	RoleCrew      Role = "crew"
	RoleScheduler Role = "scheduler"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"` // staff number, e.g. "CD1042"
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
