package appointment

// ===============================
// Appointment Status
// ===============================

// Status has no enforced transitions; any value may follow any other.
type Status string

const (
	StatusPending    Status = "pendiente"
	StatusConfirmed  Status = "confirmada"
	StatusInProgress Status = "en_progreso"
	StatusCompleted  Status = "completada"
	StatusCancelled  Status = "cancelada"
	StatusNoShow     Status = "no_asistio"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}
