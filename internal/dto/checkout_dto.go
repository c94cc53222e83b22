package dto

type CheckoutRequest struct {
	BillingPeriod string `json:"billing_period"` // "monthly" | "yearly"
}

type CheckoutResponse struct {
	IntentId    string `json:"intent_id"`
	CheckoutURL string `json:"checkout_url"`
	State       string `json:"state"`
}

type CheckoutStatusResponse struct {
	IntentId string `json:"intent_id"`
	State    string `json:"state"`
	Message  string `json:"message,omitempty"`
}

type CheckoutResolveRequest struct {
	Outcome string `json:"outcome"` // "completed" | "cancelled"
}
