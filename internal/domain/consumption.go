package domain

import "time"

type Utility string

const (
	UtilityWater       Utility = "agua"
	UtilityElectricity Utility = "electricidad"
	UtilityGas         Utility = "gas"
)

// Consumption is a meter reading plus billed amount ("consumo") for one unit
// and billing period. Admin-managed; residents only read their own unit's rows.
type Consumption struct {
	ID         string    `firestore:"-" json:"id"`
	BuildingID string    `firestore:"edificioId" json:"building_id"`
	Unit       string    `firestore:"unidad" json:"unit"`
	Utility    Utility   `firestore:"tipo" json:"utility"`
	Period     string    `firestore:"periodo" json:"period"`
	Reading    float64   `firestore:"lectura" json:"reading"`
	Amount     float64   `firestore:"valor" json:"amount"`
	RecordedAt time.Time `firestore:"fechaRegistro,serverTimestamp" json:"recorded_at"`
	UpdatedAt  time.Time `firestore:"ultimaModificacion,omitempty" json:"updated_at"`
}
