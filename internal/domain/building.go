package domain

import "time"

type BuildingStatus string

const (
	BuildingActive   BuildingStatus = "activo"
	BuildingInactive BuildingStatus = "inactivo"
)

// Building is a managed property ("edificio"). Buildings are soft-deactivated,
// never hard-deleted; children reference the building by id only.
type Building struct {
	ID            string         `firestore:"-" json:"id"`
	Name          string         `firestore:"nombre" json:"name"`
	Department    string         `firestore:"departamento" json:"department"`
	City          string         `firestore:"ciudad" json:"city"`
	Neighborhood  string         `firestore:"barrio" json:"neighborhood"`
	Address       string         `firestore:"direccion" json:"address"`
	AdminPhone    string         `firestore:"telefonoAdmin" json:"admin_phone"`
	AdminEmail    string         `firestore:"emailAdmin" json:"admin_email"`
	LogoURL       string         `firestore:"logo" json:"logo_url"`
	Status        BuildingStatus `firestore:"estado" json:"status"`
	CreatedAt     time.Time      `firestore:"createdAt,serverTimestamp" json:"created_at"`
	UpdatedAt     time.Time      `firestore:"updatedAt,omitempty" json:"updated_at"`
	InactivatedAt time.Time      `firestore:"inactivatedAt,omitempty" json:"inactivated_at"`
}
