package payment

import (
	"context"
	"errors"
	"time"

	"agendly/models"

	"github.com/google/uuid"
)

// ErrDeclined is returned when the gateway refuses the charge. The caller
// decides what to do with the booking; nothing is persisted here.
var ErrDeclined = errors.New("payment declined")

// ChargeRequest is the whole contract with the external payment capability:
// an amount goes in, a status comes out.
type ChargeRequest struct {
	AppointmentID string
	Amount        float64
	Currency      string
	Method        string
}

// Processor is the external payment capability.
type Processor interface {
	Charge(ctx context.Context, req ChargeRequest) (*models.Invoice, error)
}

func validateRequest(req ChargeRequest) error {
	if req.Amount <= 0 {
		return errors.New("invalid payment amount")
	}
	if req.AppointmentID == "" {
		return errors.New("missing appointment ID")
	}
	return nil
}

func newInvoice(req ChargeRequest) *models.Invoice {
	return &models.Invoice{
		InvoiceID:     uuid.New().String(),
		AppointmentID: req.AppointmentID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Method:        req.Method,
		Status:        "pending",
		CreatedAt:     time.Now(),
	}
}
