package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *appointment.CreateAppointment
	update *appointment.UpdateAppointment
	cancel *appointment.CancelAppointment
	list   *appointment.ListAppointments

	notifier customerNotifier
	clock    ShopClock
}

func NewAppointmentHandler(
	d appointment.Deps,
	users directory.Repository,
	notifications Notifications,
	clock ShopClock,
	log *slog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   appointment.NewCreateAppointment(d),
		update:   appointment.NewUpdateAppointment(d),
		cancel:   appointment.NewCancelAppointment(d),
		list:     appointment.NewListAppointments(d),
		notifier: newCustomerNotifier(users, notifications, log),
		clock:    clock.withDefaults(),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerID uint   `json:"customer_id"`
	BarberID   uint   `json:"barber_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime  string `json:"start_time" binding:"required"` // HH:MM
}

type UpdateAppointmentRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
}

// ======================================================
// RESPONSES
// ======================================================

type ReassignmentResponse struct {
	Status        string `json:"status"`
	EntryID       *uint  `json:"waiting_list_entry_id,omitempty"`
	AppointmentID *uint  `json:"appointment_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

type CancelAppointmentResponse struct {
	Appointment  *dto.AppointmentDTO  `json:"appointment"`
	Reassignment ReassignmentResponse `json:"reassignment"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
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
	start, ok := parseClock(c, "start_time", req.StartTime)
	if !ok {
		return
	}
	if h.clock.pastSlot(c, date, start) {
		return
	}

	ctx := c.Request.Context()

	ap, err := h.create.Execute(ctx, appointment.CreateAppointmentInput{
		CustomerID: customerID,
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		Date:       date,
		StartTime:  start,
		ActorID:    a.idPtr(),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.notifier.send(ctx, ap.CustomerID, notify.Message{
		Kind: notify.KindAppointmentConfirmed,
		Date: timezone.FormatDate(ap.Date),
		Time: ap.StartTime,
	})

	h.respond(c, http.StatusCreated, ap.ID)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	out, ok := h.visible(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, out)
}

// List: equipe vê todos (ou os confirmados de ?date=); cliente vê os seus.
func (h *AppointmentHandler) List(c *gin.Context) {
	a := currentActor(c)
	ctx := c.Request.Context()

	var (
		out []dto.AppointmentDTO
		err error
	)

	switch {
	case !a.isStaff():
		out, err = h.list.ByCustomer(ctx, a.ID)
	case c.Query("date") != "":
		date, ok := parseDate(c, "date", c.Query("date"))
		if !ok {
			return
		}
		out, err = h.list.ConfirmedOn(ctx, date)
	default:
		out, err = h.list.All(ctx)
	}
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !currentActor(c).canSee(c, customerID) {
		return
	}

	out, err := h.list.ByCustomer(c.Request.Context(), customerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) ByBarber(c *gin.Context) {
	barberID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	out, err := h.list.ByBarber(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	date, ok := parseDate(c, "date", req.Date)
	if !ok {
		return
	}
	start, ok := parseClock(c, "start_time", req.StartTime)
	if !ok {
		return
	}
	if h.clock.pastSlot(c, date, start) {
		return
	}

	if _, ok := h.visible(c, id); !ok {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), id, appointment.UpdateAppointmentInput{
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      date,
		StartTime: start,
		ActorID:   currentActor(c).idPtr(),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.respond(c, http.StatusOK, ap.ID)
}

// ======================================================
// CANCEL
// ======================================================

// Cancel responde 200 mesmo quando o repasse falha; o erro vem no corpo.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, ok := h.visible(c, id); !ok {
		return
	}

	ctx := c.Request.Context()

	res, err := h.cancel.Execute(ctx, id, currentActor(c).idPtr())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.notifyCancel(ctx, res)

	out, err := h.list.Get(ctx, res.Appointment.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelAppointmentResponse{
		Appointment:  out,
		Reassignment: reassignmentResponse(res.Reassignment),
	})
}

func (h *AppointmentHandler) notifyCancel(ctx context.Context, res *appointment.CancelResult) {
	if res.Reassignment.Outcome == appointment.ReassignmentSkipped {
		return
	}

	ap := res.Appointment
	h.notifier.send(ctx, ap.CustomerID, notify.Message{
		Kind: notify.KindAppointmentCancelled,
		Date: timezone.FormatDate(ap.Date),
		Time: ap.StartTime,
	})

	if res.Reassignment.Outcome == appointment.ReassignmentAssigned && res.Reassignment.Appointment != nil {
		promoted := res.Reassignment.Appointment
		h.notifier.send(ctx, promoted.CustomerID, notify.Message{
			Kind: notify.KindSlotAssigned,
			Date: timezone.FormatDate(promoted.Date),
			Time: promoted.StartTime,
		})
	}
}

func reassignmentResponse(r appointment.Reassignment) ReassignmentResponse {
	out := ReassignmentResponse{Status: string(r.Outcome)}
	if r.Entry != nil {
		id := r.Entry.ID
		out.EntryID = &id
	}
	if r.Appointment != nil {
		id := r.Appointment.ID
		out.AppointmentID = &id
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

// ======================================================
// HELPERS
// ======================================================

// visible carrega o agendamento e aplica a regra de posse.
func (h *AppointmentHandler) visible(c *gin.Context, id uint) (*dto.AppointmentDTO, bool) {
	out, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	if !currentActor(c).canSee(c, out.CustomerID) {
		return nil, false
	}
	return out, true
}

func (h *AppointmentHandler) respond(c *gin.Context, status int, id uint) {
	out, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(status, out)
}
