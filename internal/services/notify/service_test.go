package notify

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vipmail/internal/models"
	"vipmail/internal/services/screenshot"
)

type fakeSender struct {
	params *telego.SendPhotoParams
	err    error
}

func (f *fakeSender) SendPhoto(params *telego.SendPhotoParams) (*telego.Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return &telego.Message{}, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
}

func newTestService(sender *fakeSender) *Service {
	return &Service{
		bot:    sender,
		chatID: 42,
		now:    fixedNow,
		logger: zap.NewNop().Sugar(),
	}
}

func pngSource() screenshot.Source {
	data := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 16)...)
	return screenshot.FromBytes(data, "proof.png")
}

func TestSendBuildsPhotoAndCaption(t *testing.T) {
	sender := &fakeSender{}
	s := newTestService(sender)

	ok := s.Send(pngSource(), models.PaymentSubmission{
		Email:         "user@example.com",
		Phone:         "+201158720470",
		PaymentMethod: "paypal",
		PaymentType:   "paypal_balance",
	})

	assert.True(t, ok)
	require.NotNil(t, sender.params)
	assert.Equal(t, int64(42), sender.params.ChatID.ID)
	assert.Equal(t, telego.ModeHTML, sender.params.ParseMode)

	caption := sender.params.Caption
	assert.Contains(t, caption, "<b>Payment Method:</b> Paypal")
	assert.Contains(t, caption, "<b>Payment Type:</b> Paypal_balance")
	assert.Contains(t, caption, "user@example.com")
	assert.Contains(t, caption, "+201158720470")
	assert.Contains(t, caption, "<b>Time:</b> 2026-01-02 03:04:05")
}

func TestSendOmitsEmptyOptionalFields(t *testing.T) {
	sender := &fakeSender{}
	s := newTestService(sender)

	s.Send(pngSource(), models.PaymentSubmission{
		Email:         "user@example.com",
		Phone:         "+201158720470",
		PaymentMethod: "instapay",
	})

	require.NotNil(t, sender.params)
	assert.NotContains(t, sender.params.Caption, "Payment Type")
	assert.NotContains(t, sender.params.Caption, "Desired Address")
}

func TestSendIncludesDesiredAddress(t *testing.T) {
	sender := &fakeSender{}
	s := newTestService(sender)

	s.Send(pngSource(), models.PaymentSubmission{
		Email:         "user@example.com",
		Phone:         "+201158720470",
		PaymentMethod: "paypal",
		DesiredEmail:  "john.doe-99",
	})

	require.NotNil(t, sender.params)
	assert.Contains(t, sender.params.Caption, "<b>Desired Address:</b> john.doe-99")
}

func TestSendTruncatesOversizedCaption(t *testing.T) {
	sender := &fakeSender{}
	s := newTestService(sender)

	s.Send(pngSource(), models.PaymentSubmission{
		Email:         strings.Repeat("a", 600) + "@example.com",
		Phone:         "+201158720470",
		PaymentMethod: "paypal",
		PaymentType:   strings.Repeat("x", 600),
	})

	require.NotNil(t, sender.params)
	assert.LessOrEqual(t, len([]rune(sender.params.Caption)), captionLimit)
}

func TestSendReturnsFalseOnRelayError(t *testing.T) {
	sender := &fakeSender{err: errors.New("telegram: Bad Request: chat not found")}
	s := newTestService(sender)

	ok := s.Send(pngSource(), models.PaymentSubmission{
		Email:         "user@example.com",
		Phone:         "+201158720470",
		PaymentMethod: "paypal",
	})

	assert.False(t, ok)
}

func TestUcfirst(t *testing.T) {
	assert.Equal(t, "Paypal", ucfirst("paypal"))
	assert.Equal(t, "Instapay", ucfirst("instapay"))
	assert.Equal(t, "", ucfirst(""))
}
