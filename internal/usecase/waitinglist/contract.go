package waitinglist

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/waitinglist"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Deps struct {
	WaitingList domain.Repository
	Directory   directory.Repository
	Tx          TxManager
	Audit       Auditor
	Log         *slog.Logger
	Now         func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Audit == nil {
		d.Audit = noopAuditor{}
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

type noopAuditor struct{}

func (noopAuditor) Dispatch(audit.Event) {}

// position é 1-based; zero quando a entrada não está na fila.
func position(queue []models.WaitingListEntry, id uint) int {
	for i, e := range queue {
		if e.ID == id {
			return i + 1
		}
	}
	return 0
}
