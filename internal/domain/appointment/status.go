package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	// StatusPending is set only by external collaborators.
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// InitialStatus é o status de todo agendamento criado pelo motor de reservas.
func InitialStatus() Status {
	return StatusConfirmed
}

// IsCancelled is terminal: there is no way back to confirmed.
func IsCancelled(current Status) bool {
	return current == StatusCancelled
}
