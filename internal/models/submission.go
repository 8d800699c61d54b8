package models

// Accepted payment methods.
const (
	PaymentMethodPayPal   = "paypal"
	PaymentMethodInstaPay = "instapay"
)

// PaymentSubmission is the validated, sanitized content of one form
// submission. It lives for a single request: built, relayed, discarded.
// Submissions are never persisted and never deduplicated; resubmitting the
// same form produces a second independent notification.
type PaymentSubmission struct {
	Email         string
	Phone         string
	PaymentMethod string
	// PaymentType is free-form and only meaningful for PayPal submissions.
	PaymentType string
	// DesiredEmail is the mailbox local part the customer wants provisioned.
	DesiredEmail string
}

// SubmissionData is echoed back to the client on success. Sanitized values
// only; the captcha token and file bytes never appear here.
type SubmissionData struct {
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method"`
}
