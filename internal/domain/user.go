package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

type User struct {
	ID                    int64     `json:"id"`
	Username              string    `json:"username"`
	PasswordHash          string    `json:"-"`
	FullName              string    `json:"fullName"`
	Email                 string    `json:"email"`
	Role                  Role      `json:"role"`
	NightPremiumEnabled   bool      `json:"nightPremiumEnabled"`
	SundayPremiumEnabled  bool      `json:"sundayPremiumEnabled"`
	HolidayPremiumEnabled bool      `json:"holidayPremiumEnabled"`
	IsActive              bool      `json:"isActive"`
	CreatedAt             time.Time `json:"createdAt"`
	Version               int32     `json:"-"`
}
