package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
)

// 通知メールの送信。テンプレート整形は持たず、プレーンテキストのみ。
type Mailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// net/smtpで送る素朴な実装
type SMTPMailer struct {
	addr string // host:port
	from string
}

func NewSMTPMailer(addr string, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

func (m *SMTPMailer) Send(ctx context.Context, to string, subject string, body string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	return smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(b.String()))
}

// SMTP未設定のときに使う。ログに出すだけ。
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(ctx context.Context, to string, subject string, body string) error {
	log.Info().
		Str("to", to).
		Str("subject", subject).
		Msg("mail (log only)")
	return nil
}
