package domain

import "time"

// Document is distribution metadata for a file handed out to a building's
// residents. The binary lives in object storage under StoragePath; deleting a
// document removes both the metadata record and the stored object.
type Document struct {
	ID           string    `firestore:"-" json:"id"`
	Title        string    `firestore:"titulo" json:"title"`
	BuildingID   string    `firestore:"edificioId" json:"building_id"`
	BuildingName string    `firestore:"edificioNombre" json:"building_name"`
	Category     string    `firestore:"tipo" json:"category"`
	Year         string    `firestore:"año" json:"year"`
	FileURL      string    `firestore:"archivourl" json:"file_url"`
	StoragePath  string    `firestore:"storagePath" json:"storage_path"`
	CreatedAt    time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
}
