package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// Actions
// ======================================================

const (
	ActionAppointmentCreated    = "appointment_created"
	ActionAppointmentUpdated    = "appointment_updated"
	ActionAppointmentCancelled  = "appointment_cancelled"
	ActionAppointmentReassigned = "appointment_reassigned"
	ActionWaitingListEnqueued   = "waiting_list_enqueued"
	ActionWaitingListExpired    = "waiting_list_expired"
	ActionBusinessHoursUpdated  = "business_hours_updated"
	ActionBarberServicesUpdated = "barber_services_updated"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// ======================================================
// Store
// ======================================================

type Filter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type Store interface {
	Insert(ctx context.Context, log *models.AuditLog) error
	// List devolve a página pedida (mais recentes primeiro) e o total filtrado.
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return l.store.Insert(ctx, &models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	})
}

func IDPtr(id uint) *uint {
	return &id
}
