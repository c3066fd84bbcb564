package domain

import (
	"strings"
	"time"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "pendiente"
	ReportResolved ReportStatus = "resuelto"
)

// Report is a resident-submitted incident ("mensaje") against another unit in
// the same building. Contact details of both parties are denormalized into the
// record at creation so later profile edits do not rewrite history.
//
// Lifecycle: created pendiente, resolved exactly once in the normal flow by an
// administrator attaching a resolution text, deletable by its author or an
// administrator at any time.
type Report struct {
	ID          string       `firestore:"-" json:"id"`
	BuildingID  string       `firestore:"edificioId" json:"building_id"`
	UserID      string       `firestore:"usuarioId" json:"user_id"`
	UserName    string       `firestore:"usuarioNombre" json:"user_name"`
	TargetUnit  string       `firestore:"apto" json:"target_unit"`
	TargetPhone string       `firestore:"telefonoDestino" json:"target_phone"`
	OriginUnit  string       `firestore:"aptoOrigen" json:"origin_unit"`
	OriginPhone string       `firestore:"telefonoOrigen" json:"origin_phone"`
	Body        string       `firestore:"mensaje" json:"body"`
	Status      ReportStatus `firestore:"status" json:"status"`
	Kind        string       `firestore:"tipo" json:"kind"`
	Resolution  string       `firestore:"respuestaAdmin,omitempty" json:"resolution,omitempty"`
	Ticket      string       `firestore:"numeroReporte" json:"ticket"`
	CreatedAt   time.Time    `firestore:"fecha,serverTimestamp" json:"created_at"`
	ResolvedAt  time.Time    `firestore:"fechaRespuesta,omitempty" json:"resolved_at,omitempty"`
}

const ReportKindIncident = "reporte"

func (r *Report) IsPending() bool { return r.Status != ReportResolved }

// Valid checks the resolution invariant: a non-empty resolution text exists
// if and only if the report is resolved.
func (r *Report) Valid() bool {
	resolved := r.Status == ReportResolved
	hasText := strings.TrimSpace(r.Resolution) != ""
	return resolved == hasText
}
