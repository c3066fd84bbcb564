package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleResident Role = "residente"
)

// User is a portal account stored in the "usuarios" collection. The Firebase
// Auth UID lives in a field rather than as the document key; sign-in lookups
// go through that field.
type User struct {
	ID         string    `firestore:"-" json:"id"`
	AuthUID    string    `firestore:"uid" json:"uid"`
	Name       string    `firestore:"nombreApellido" json:"name"`
	Email      string    `firestore:"email" json:"email"`
	Phone      string    `firestore:"telefono" json:"phone"`
	Role       Role      `firestore:"rol" json:"role"`
	BuildingID string    `firestore:"edificioId" json:"building_id"`
	Unit       string    `firestore:"unidad" json:"unit"`
	Active     bool      `firestore:"estado" json:"active"`
	CreatedAt  time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
	UpdatedAt  time.Time `firestore:"updatedAt,omitempty" json:"updated_at"`
}

func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }
func (u *User) IsResident() bool { return u.Role == RoleResident }

// Profile is the resolved identity handed to request handlers once the auth
// token has been matched against a User record.
type Profile struct {
	UserID     string `json:"user_id"`
	AuthUID    string `json:"uid"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       Role   `json:"role"`
	BuildingID string `json:"building_id"`
	Unit       string `json:"unit"`
}

func (p *Profile) IsAdmin() bool { return p.Role == RoleAdmin }
