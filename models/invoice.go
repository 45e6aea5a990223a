package models

import "time"

// Invoice records the outcome of one charge against the payment capability.
type Invoice struct {
	InvoiceID     string    `bson:"invoice_id" json:"invoice_id"`
	AppointmentID string    `bson:"appointment_id" json:"appointment_id"`
	Amount        float64   `bson:"amount" json:"amount"`
	Currency      string    `bson:"currency" json:"currency"`
	Method        string    `bson:"method" json:"method"`
	Status        string    `bson:"status" json:"status"` // "pending", "paid" or "declined"
	PaymentRef    string    `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
