package models

import "time"

// Payment statuses as reported to API consumers.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// InitiatePaymentRequest is the payload for mobile-money payment
// initiation.
type InitiatePaymentRequest struct {
	Amount       float64 `json:"amount"`
	PhoneNumber  string  `json:"phoneNumber"`
	CustomerName string  `json:"customerName"`
	OrderID      string  `json:"orderId,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// VerifyPaymentRequest is the payload for payment verification. At least
// one identifier must be present.
type VerifyPaymentRequest struct {
	TransactionID string `json:"transactionId,omitempty"`
	OrderID       string `json:"orderId,omitempty"`
}

// PaymentData is the success payload of payment initiation.
type PaymentData struct {
	PaymentURL    string  `json:"paymentUrl"`
	OrderID       string  `json:"orderId"`
	Amount        float64 `json:"amount"`
	CustomerName  string  `json:"customerName"`
	PhoneNumber   string  `json:"phoneNumber"`
	TransactionID string  `json:"transactionId"`
	PrepayID      string  `json:"prepayId"`
	IsMock        bool    `json:"isMock,omitempty"`
}

// PaymentStatus is the payload of verification and status lookups.
type PaymentStatus struct {
	TransactionID string    `json:"transactionId"`
	OrderID       string    `json:"orderId,omitempty"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Timestamp     time.Time `json:"timestamp"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	IsMock        bool      `json:"isMock,omitempty"`
}

// PaymentRecord is the persisted state of a payment attempt.
type PaymentRecord struct {
	TransactionID string    `json:"transaction_id"`
	OrderID       string    `json:"order_id"`
	PrepayID      string    `json:"prepay_id,omitempty"`
	Provider      string    `json:"provider"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	CustomerName  string    `json:"customer_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PaymentWebhook is the notification shape posted by the provider.
type PaymentWebhook struct {
	TransactionID string  `json:"transactionId"`
	OrderID       string  `json:"orderId"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
}

// CreatePaymentIntentRequest is the payload for card payments.
type CreatePaymentIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	OrderID  string `json:"orderId,omitempty"`
}
