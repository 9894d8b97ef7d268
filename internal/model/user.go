package model

import (
	"time"
)

type User struct {
	ID          string    `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	Password    string    `db:"password" json:"-"`
	DisplayName string    `db:"display_name" json:"displayName"`
	Email       string    `db:"email" json:"email"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	Avatar      *string   `db:"avatar" json:"avatar,omitempty"`
	Role        UserRole  `db:"role" json:"role"`
	Status      string    `db:"status" json:"status"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type CreateUserParams struct {
	Username     string
	PasswordHash string
	DisplayName  string
	Email        string
}

// UpdateUserParams carries the mutable profile fields. Nil means unchanged.
type UpdateUserParams struct {
	DisplayName *string
	Email       *string
	Phone       *string
	Avatar      *string
	Status      *string
}

// UserSummary is the public projection used by search and friend listings.
type UserSummary struct {
	ID          string  `db:"id" json:"id"`
	Username    string  `db:"username" json:"username"`
	DisplayName string  `db:"display_name" json:"displayName"`
	Avatar      *string `db:"avatar" json:"avatar,omitempty"`
	Status      string  `db:"status" json:"status"`
}
