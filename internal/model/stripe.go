package model

import "encoding/json"

const (
	StripeEventChargeSucceeded = "charge.succeeded"

	StripeMetadataProductID = "productId"

	PaymentIntentStatusSucceeded = "succeeded"
)

// StripeWebhookEvent is a verified event with its data object left raw.
type StripeWebhookEvent struct {
	ID     string
	Type   string
	Object json.RawMessage
}

type StripeBillingDetails struct {
	Email string `json:"email"`
}

type StripeCharge struct {
	ID             string               `json:"id"`
	Amount         int64                `json:"amount"`
	Currency       string               `json:"currency"`
	PaymentIntent  string               `json:"payment_intent"`
	Metadata       map[string]string    `json:"metadata"`
	BillingDetails StripeBillingDetails `json:"billing_details"`
}

type StripePaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Metadata     map[string]string
}
