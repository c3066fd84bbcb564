package domain

import "time"

// Occupancy states for a unit ("Disponible" counts as active for the
// catalog filter, the other two as inactive).
const (
	UnitAvailable = "Disponible"
	UnitOccupied  = "Habitado"
	UnitSold      = "Vendido"
)

type OfferKind string

const (
	OfferSale     OfferKind = "Venta"
	OfferRent     OfferKind = "Arriendo"
	OfferHandover OfferKind = "Entrega"
)

// Unit is a dwelling ("inmueble") inside a building. Lifecycle is independent
// from Building: the parent is referenced by id and may be gone.
type Unit struct {
	ID           string    `firestore:"-" json:"id"`
	BuildingID   string    `firestore:"edificioId" json:"building_id"`
	Label        string    `firestore:"unidad" json:"label"`
	Name         string    `firestore:"nombreInmueble,omitempty" json:"name,omitempty"`
	Apartment    string    `firestore:"apartamento,omitempty" json:"apartment,omitempty"`
	Floor        int       `firestore:"piso" json:"floor"`
	Rooms        int       `firestore:"habitaciones" json:"rooms"`
	Baths        int       `firestore:"baños" json:"baths"`
	Area         string    `firestore:"area" json:"area"`
	Price        float64   `firestore:"precio" json:"price"`
	Offer        OfferKind `firestore:"tipoOferta,omitempty" json:"offer,omitempty"`
	Status       string    `firestore:"estado" json:"status"`
	Neighborhood string    `firestore:"barrio,omitempty" json:"neighborhood,omitempty"`
	Stratum      int       `firestore:"estrato,omitempty" json:"stratum,omitempty"`
	Parking      bool      `firestore:"parqueadero" json:"parking"`
	Furnished    bool      `firestore:"amoblado" json:"furnished"`
	Featured     bool      `firestore:"destacado" json:"featured"`
	Phone        string    `firestore:"telefono,omitempty" json:"phone,omitempty"`
	CellPhone    string    `firestore:"celular,omitempty" json:"cell_phone,omitempty"`
	OwnerPhone   string    `firestore:"telefonoPropietario,omitempty" json:"owner_phone,omitempty"`
	Gallery      []string  `firestore:"fotos" json:"gallery"`
	PublishedAt  time.Time `firestore:"fechaPublicacion,serverTimestamp" json:"published_at"`
	UpdatedAt    time.Time `firestore:"updatedAt,omitempty" json:"updated_at"`
}

// DisplayLabel returns the human identifier residents know the unit by.
// Historical records are inconsistent about which field carries it.
func (u *Unit) DisplayLabel() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Label != "":
		return u.Label
	case u.Apartment != "":
		return u.Apartment
	}
	return "S/N"
}

// ContactPhone returns the first phone number on record for the unit.
func (u *Unit) ContactPhone() string {
	switch {
	case u.Phone != "":
		return u.Phone
	case u.CellPhone != "":
		return u.CellPhone
	case u.OwnerPhone != "":
		return u.OwnerPhone
	}
	return "No registrado"
}
