package registry

import (
	apperrors "caja/internal/errors"
	"caja/internal/models"
)

// MovementLog is the append-only sequence of executed movements.
// Operation numbers are 1-based and equal the log length at insertion
// time; movements are never removed except by Clear.
type MovementLog struct {
	movements []*models.Movement
}

// NewMovementLog creates an empty log.
func NewMovementLog() *MovementLog {
	return &MovementLog{}
}

// Append adds a movement to the end of the log.
func (l *MovementLog) Append(m *models.Movement) {
	l.movements = append(l.movements, m)
}

// Len returns the number of logged movements.
func (l *MovementLog) Len() int { return len(l.movements) }

// All returns the logged movements in execution order.
func (l *MovementLog) All() []*models.Movement {
	out := make([]*models.Movement, len(l.movements))
	copy(out, l.movements)
	return out
}

// FindByOperationNumber returns the movement with the given operation
// number, or ErrOperationNotFound.
func (l *MovementLog) FindByOperationNumber(n int) (*models.Movement, error) {
	for _, m := range l.movements {
		if m.OperationNumber == n {
			return m, nil
		}
	}
	return nil, apperrors.ErrOperationNotFound
}

// FilterByType returns a new log with the movements matching the given
// transaction code and subcode, preserving order.
func (l *MovementLog) FilterByType(code, subcode int) *MovementLog {
	out := NewMovementLog()
	for _, m := range l.movements {
		if m.Code == code && m.Subcode == subcode {
			out.Append(m)
		}
	}
	return out
}

// FilterByCode returns a new log with the movements matching the given
// transaction code across all subcodes, preserving order.
func (l *MovementLog) FilterByCode(code int) *MovementLog {
	out := NewMovementLog()
	for _, m := range l.movements {
		if m.Code == code {
			out.Append(m)
		}
	}
	return out
}

// FilterByCurrency returns a new log with the movements whose primary
// currency matches the given code, preserving order.
func (l *MovementLog) FilterByCurrency(code int) *MovementLog {
	out := NewMovementLog()
	for _, m := range l.movements {
		if m.PrimaryCurrency == code {
			out.Append(m)
		}
	}
	return out
}

// FilterByReference returns a new log with the movements carrying the
// given reference, preserving order. References need not be unique.
func (l *MovementLog) FilterByReference(reference string) *MovementLog {
	out := NewMovementLog()
	for _, m := range l.movements {
		if m.Reference == reference {
			out.Append(m)
		}
	}
	return out
}

// Clear empties the log for a start-of-day reset and reports success.
func (l *MovementLog) Clear() bool {
	l.movements = nil
	return len(l.movements) == 0
}
