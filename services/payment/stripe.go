package payment

import (
	"context"
	"fmt"

	"agendly/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeProcessor charges through Stripe. The global stripe.Key is set at
// bootstrap; this adapter only translates amount+method into a charge and a
// charge outcome into a status.
type StripeProcessor struct {
	logger   *zap.Logger
	currency string
}

func NewStripeProcessor(logger *zap.Logger, currency string) *StripeProcessor {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeProcessor{logger: logger, currency: currency}
}

func (p *StripeProcessor) Charge(ctx context.Context, req ChargeRequest) (*models.Invoice, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}

	inv := newInvoice(req)
	if inv.Currency == "" {
		inv.Currency = p.currency
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(req.Amount * 100)), // Stripe wants the smallest currency unit
		Currency: stripe.String(inv.Currency),
		Confirm:  stripe.Bool(true),
		Metadata: map[string]string{"appointment_id": req.AppointmentID},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		p.logger.Error("stripe charge failed", zap.String("appointmentID", req.AppointmentID), zap.Error(err))
		return nil, fmt.Errorf("stripe charge failed: %w", err)
	}

	inv.PaymentRef = pi.ID
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		inv.Status = "paid"
	case stripe.PaymentIntentStatusCanceled:
		inv.Status = "declined"
	default:
		inv.Status = "declined"
	}
	if inv.Status != "paid" {
		p.logger.Warn("stripe charge not captured",
			zap.String("appointmentID", req.AppointmentID), zap.String("intentStatus", string(pi.Status)))
		return inv, ErrDeclined
	}

	p.logger.Info("stripe charge captured",
		zap.String("appointmentID", req.AppointmentID), zap.String("invoice", inv.InvoiceID))
	return inv, nil
}
