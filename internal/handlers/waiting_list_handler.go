package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/waitinglist"
)

type WaitingListHandler struct {
	enqueue  *waitinglist.EnqueueEntry
	position *waitinglist.GetPosition
	cancel   *waitinglist.CancelEntry
	list     *waitinglist.ListEntries

	notifier customerNotifier
	clock    ShopClock
}

func NewWaitingListHandler(
	d waitinglist.Deps,
	users directory.Repository,
	notifications Notifications,
	clock ShopClock,
	log *slog.Logger,
) *WaitingListHandler {
	return &WaitingListHandler{
		enqueue:  waitinglist.NewEnqueueEntry(d),
		position: waitinglist.NewGetPosition(d),
		cancel:   waitinglist.NewCancelEntry(d),
		list:     waitinglist.NewListEntries(d),
		notifier: newCustomerNotifier(users, notifications, log),
		clock:    clock.withDefaults(),
	}
}

type EnqueueRequest struct {
	CustomerID uint   `json:"customer_id"`
	BarberID   uint   `json:"barber_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
}

func (h *WaitingListHandler) Enqueue(c *gin.Context) {
	var req EnqueueRequest
	if !bindJSON(c, &req) {
		return
	}

	a := currentActor(c)
	customerID, ok := a.customerFor(c, req.CustomerID)
	if !ok {
		return
	}
	date, ok := parseDate(c, "date", req.Date)
	if !ok {
		return
	}
	if h.clock.pastDate(c, date) {
		return
	}

	ctx := c.Request.Context()

	res, err := h.enqueue.Execute(ctx, waitinglist.EnqueueInput{
		CustomerID: customerID,
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		Date:       date,
		ActorID:    a.idPtr(),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.notifier.send(ctx, customerID, notify.Message{
		Kind:     notify.KindWaitingListPosition,
		Position: res.Position,
	})

	c.JSON(http.StatusCreated, res)
}

func (h *WaitingListHandler) Position(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	entry, err := h.list.Get(ctx, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if !currentActor(c).canSee(c, entry.CustomerID) {
		return
	}

	pos, err := h.position.Execute(ctx, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"position": pos,
	})
}

func (h *WaitingListHandler) ByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !currentActor(c).canSee(c, customerID) {
		return
	}

	entries, err := h.list.ByCustomer(c.Request.Context(), customerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, entries)
}

// ByBarber exige ?date= e devolve só quem ainda espera.
func (h *WaitingListHandler) ByBarber(c *gin.Context) {
	barberID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	date, ok := parseDate(c, "date", c.Query("date"))
	if !ok {
		return
	}

	entries, err := h.list.ActiveByBarber(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, entries)
}

func (h *WaitingListHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	entry, err := h.list.Get(ctx, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if !currentActor(c).canSee(c, entry.CustomerID) {
		return
	}

	if _, err := h.cancel.Execute(ctx, id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
