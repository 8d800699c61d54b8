// Package notify relays a validated submission to the operator's Telegram
// chat as a photo with an HTML caption.
package notify

import (
	"bytes"
	"net"
	"strings"
	"time"
	"unicode"

	"github.com/mymmrac/telego"
	"github.com/mymmrac/telego/telegoutil"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"vipmail/internal/models"
	"vipmail/internal/services/screenshot"
)

// captionLimit is the Telegram caption length cap; longer captions are
// truncated rather than failing the relay.
const captionLimit = 1024

const (
	connectTimeout = 10 * time.Second
	totalTimeout   = 30 * time.Second
)

// Notifier pushes one payment-proof notification to the review channel.
type Notifier interface {
	Send(src screenshot.Source, sub models.PaymentSubmission) bool
}

type sender interface {
	SendPhoto(params *telego.SendPhotoParams) (*telego.Message, error)
}

// Service is the Telegram sendPhoto relay.
type Service struct {
	bot    sender
	chatID int64
	now    func() time.Time
	logger *zap.SugaredLogger
}

// New builds the relay with a bounded client: connect inside connectTimeout,
// whole call inside totalTimeout.
func New(token string, chatID int64, logger *zap.SugaredLogger) (*Service, error) {
	bot, err := telego.NewBot(token,
		telego.WithFastHTTPClient(&fasthttp.Client{
			ReadTimeout:  totalTimeout,
			WriteTimeout: totalTimeout,
			Dial: func(addr string) (net.Conn, error) {
				return fasthttp.DialTimeout(addr, connectTimeout)
			},
		}),
		telego.WithDefaultLogger(false, true),
	)
	if err != nil {
		return nil, err
	}
	return &Service{
		bot:    bot,
		chatID: chatID,
		now:    time.Now,
		logger: logger,
	}, nil
}

// Send relays the screenshot and caption in a single sendPhoto call. A
// transport error and an API "ok": false both come back from the client as
// errors; either way the caller only gets a boolean, the detail is logged
// here.
func (s *Service) Send(src screenshot.Source, sub models.PaymentSubmission) bool {
	photo := telegoutil.File(telegoutil.NameReader(
		bytes.NewReader(src.Bytes()),
		"payment."+screenshot.Extension(src),
	))

	_, err := s.bot.SendPhoto(&telego.SendPhotoParams{
		ChatID:    telego.ChatID{ID: s.chatID},
		Photo:     photo,
		Caption:   s.buildCaption(sub),
		ParseMode: telego.ModeHTML,
	})
	if err != nil {
		s.logger.Errorf("telegram sendPhoto: %v", err)
		return false
	}
	return true
}

func (s *Service) buildCaption(sub models.PaymentSubmission) string {
	var b strings.Builder
	b.WriteString("🎉 <b>New VIP Mail Payment Request</b>\n\n")
	b.WriteString("💳 <b>Payment Method:</b> " + ucfirst(sub.PaymentMethod) + "\n")
	if sub.PaymentType != "" {
		b.WriteString("📋 <b>Payment Type:</b> " + ucfirst(sub.PaymentType) + "\n")
	}
	if sub.DesiredEmail != "" {
		b.WriteString("📮 <b>Desired Address:</b> " + sub.DesiredEmail + "\n")
	}
	b.WriteString("📧 <b>Email:</b> " + sub.Email + "\n")
	b.WriteString("📱 <b>Phone:</b> " + sub.Phone + "\n")
	b.WriteString("⏰ <b>Time:</b> " + s.now().Format("2006-01-02 15:04:05") + "\n")

	caption := b.String()
	if r := []rune(caption); len(r) > captionLimit {
		caption = string(r[:captionLimit])
	}
	return caption
}

func ucfirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
