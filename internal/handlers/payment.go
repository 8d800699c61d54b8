package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"vipmail/internal/config"
	"vipmail/internal/models"
	"vipmail/internal/services/captcha"
	"vipmail/internal/services/notify"
	"vipmail/internal/services/screenshot"
	"vipmail/internal/utils/response"
	"vipmail/internal/validation"
)

// User-facing messages. The contract is message-exact: the browser client
// and the operator docs both key off these strings.
const (
	msgInvalidReqMethod = "Invalid request method"
	msgCaptchaRequired  = "Captcha verification is required"
	msgCaptchaFailed    = "Captcha verification failed. Please try again."
	msgInvalidEmail     = "Invalid email address"
	msgInvalidPhone     = "Invalid phone number"
	msgInvalidPayMethod = "Invalid payment method"
	msgInvalidDesired   = "Invalid desired email address"
	msgFileRequired     = "Payment screenshot is required"
	msgFileTooLarge     = "File size exceeds maximum limit (5MB)"
	msgFileWrongType    = "Invalid file type. Only images are allowed."
	msgNotifyFailed     = "Failed to send notification. Please try again."
	msgSubmitted        = "Your payment request has been submitted successfully!"
)

// PaymentHandler accepts payment-proof form submissions, validates them and
// relays them for manual review. It holds no state across requests.
type PaymentHandler struct {
	cfg      config.Config
	verifier captcha.Verifier
	notifier notify.Notifier
	// store is the retention policy for screenshots that failed to relay;
	// nil means discard.
	store  *screenshot.Store
	logger *zap.SugaredLogger
}

// NewPaymentHandler wires the submission handler.
func NewPaymentHandler(
	cfg config.Config,
	verifier captcha.Verifier,
	notifier notify.Notifier,
	store *screenshot.Store,
	logger *zap.SugaredLogger,
) *PaymentHandler {
	return &PaymentHandler{
		cfg:      cfg,
		verifier: verifier,
		notifier: notifier,
		store:    store,
		logger:   logger,
	}
}

// SubmitPayment runs the validation sequence and relays the submission. The
// first failing check ends the request; every outcome is an HTTP 200 JSON
// envelope. Captcha verification always happens before field validation and
// notification never happens before verification succeeds.
func (h *PaymentHandler) SubmitPayment(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return response.Fail(c, msgInvalidReqMethod)
	}

	token := c.FormValue("h-captcha-response")
	if token == "" {
		return response.Fail(c, msgCaptchaRequired)
	}
	if !h.verifier.Verify(token) {
		return response.Fail(c, msgCaptchaFailed)
	}

	email := strings.TrimSpace(c.FormValue("email"))
	if email == "" || !validation.IsEmail(email) {
		return response.Fail(c, msgInvalidEmail)
	}
	email = validation.Sanitize(email)

	phone := c.FormValue("phone")
	if phone == "" || !validation.IsPhone(phone) {
		return response.Fail(c, msgInvalidPhone)
	}
	phone = validation.Sanitize(phone)

	method := c.FormValue("payment_method")
	if !validation.IsPaymentMethod(method) {
		return response.Fail(c, msgInvalidPayMethod)
	}

	// Free-form by design, but it still lands in the caption markup.
	paymentType := validation.Sanitize(c.FormValue("paypal-type"))

	desired := strings.TrimSpace(c.FormValue("desired_email"))
	if desired != "" && !validation.IsLocalPart(desired) {
		return response.Fail(c, msgInvalidDesired)
	}
	desired = validation.Sanitize(desired)

	fh, err := c.FormFile("screenshot")
	if err != nil || fh.Size == 0 {
		return response.Fail(c, msgFileRequired)
	}
	if fh.Size > h.cfg.MaxFileSize {
		return response.Fail(c, msgFileTooLarge)
	}

	src, err := screenshot.FromUpload(fh)
	if err != nil {
		h.logger.Errorf("read upload: %v", err)
		return response.Fail(c, msgFileRequired)
	}
	if !screenshot.Allowed(src) {
		return response.Fail(c, msgFileWrongType)
	}

	sub := models.PaymentSubmission{
		Email:         email,
		Phone:         phone,
		PaymentMethod: method,
		PaymentType:   paymentType,
		DesiredEmail:  desired,
	}

	if !h.notifier.Send(src, sub) {
		h.logger.Errorw("notification relay failed", "email", sub.Email)
		h.retain(src, sub)
		return response.Fail(c, msgNotifyFailed)
	}

	return response.OK(c, msgSubmitted, models.SubmissionData{
		Email:         sub.Email,
		Phone:         sub.Phone,
		PaymentMethod: sub.PaymentMethod,
	})
}

// retain applies the retention policy after a failed relay. Without a store
// the bytes simply go out of scope with the request.
func (h *PaymentHandler) retain(src screenshot.Source, sub models.PaymentSubmission) {
	if h.store == nil {
		return
	}
	path, err := h.store.Retain(src)
	if err != nil {
		h.logger.Errorf("retain screenshot: %v", err)
		return
	}
	h.logger.Infow("screenshot retained for manual review",
		"path", path,
		"email", sub.Email,
	)
}
