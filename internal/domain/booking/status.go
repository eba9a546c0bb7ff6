package booking

import "github.com/BruksfildServices01/shop-agenda/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// ActiveStatuses são os status que ocupam o horário. Reservas
// canceladas ou recusadas liberam o slot.
var ActiveStatuses = []Status{StatusPending, StatusAccepted, StatusCompleted}

func IsActive(s Status) bool {
	return s != StatusCancelled && s != StatusRejected
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// ===============================
// Transições
// ===============================

// pending -> accepted -> completed
// pending -> rejected
// pending|accepted -> cancelled
// Nenhuma transição sai de estado terminal.

func CanAccept(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusAccepted {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusAccepted {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

// InitialStatus depende da política da loja: auto-aceite liga a
// reserva já em accepted.
func InitialStatus(autoAccept bool) Status {
	if autoAccept {
		return StatusAccepted
	}
	return StatusPending
}
