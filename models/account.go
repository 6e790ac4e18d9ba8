// models/account.go
package models

import "time"

// Role is the platform role an account signs up with.
type Role string

const (
	RoleLawyer Role = "lawyer"
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleLawyer, RoleClient, RoleAdmin:
		return true
	}
	return false
}

// Account represents a platform user. Contact fields are edited by the
// personal_info onboarding step.
type Account struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	PhoneNumber  string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	CountryID    string    `bson:"countryId,omitempty" json:"countryId,omitempty"`
	StateID      string    `bson:"stateId,omitempty" json:"stateId,omitempty"`
	CityID       string    `bson:"cityId,omitempty" json:"cityId,omitempty"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsLawyer reports whether the account holds the lawyer role.
func (a *Account) IsLawyer() bool {
	return a != nil && a.Role == RoleLawyer
}

// FullName joins first and last name.
func (a *Account) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// ContactUpdate carries the account fields owned by the personal_info step.
type ContactUpdate struct {
	PhoneNumber string
	CountryID   string
	StateID     string
	CityID      string
}
