package entity

import (
	"time"

	"tutortrack/core/entity"

	"github.com/google/uuid"
)

// Payment modes accepted on a payment row
const (
	ModeCash         = "cash"
	ModeUPI          = "upi"
	ModeBankTransfer = "bank_transfer"
	ModeCard         = "card"
	ModeCheque       = "cheque"
)

// ValidPaymentMode reports whether mode is one of the accepted values
func ValidPaymentMode(mode string) bool {
	switch mode {
	case ModeCash, ModeUPI, ModeBankTransfer, ModeCard, ModeCheque:
		return true
	}
	return false
}

type Payment struct {
	OwnerID     uuid.UUID  `db:"owner_id"`
	PupilID     uuid.UUID  `db:"pupil_id"`
	Amount      float64    `db:"amount"`
	Month       int        `db:"month"`
	Year        int        `db:"year"`
	PaymentDate *time.Time `db:"payment_date"`
	PaymentMode string     `db:"payment_mode"`
	Notes       *string    `db:"notes"`

	entity.BaseEntity
}

type PaginatedPaymentEntity = entity.Pagination[Payment]
