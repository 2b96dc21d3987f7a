package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dispatch-tracker/config"

	"gopkg.in/gomail.v2"
)

// DispatchNotice summarises a finished dispatch for the mail body.
type DispatchNotice struct {
	SapExitID  string
	Type       string
	Pallets    []string
	BoxCount   int
	Operator   string
	Notes      string
	Dispatched time.Time
}

type Notifier interface {
	NotifyDispatch(ctx context.Context, notice DispatchNotice) error
}

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailNotifier struct {
	sender Sender
	from   string
	to     []string
}

func NewMailNotifier(sender Sender, from string, to []string) *MailNotifier {
	return &MailNotifier{sender: sender, from: from, to: to}
}

// NewMailNotifierFromConfig returns nil when SMTP is not configured.
func NewMailNotifierFromConfig(cfg *config.Config) Notifier {
	if !cfg.MailEnabled() {
		return nil
	}
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return NewMailNotifier(dialer, from, cfg.DispatchNotifyTo)
}

func (n *MailNotifier) NotifyDispatch(ctx context.Context, notice DispatchNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", n.to...)
	msg.SetHeader("Subject", fmt.Sprintf("Dispatch %s (%s)", notice.SapExitID, notice.Type))
	msg.SetBody("text/plain", dispatchBody(notice))

	if err := n.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send dispatch mail: %w", err)
	}
	return nil
}

func dispatchBody(n DispatchNotice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SAP exit: %s\n", n.SapExitID)
	fmt.Fprintf(&b, "Type: %s\n", n.Type)
	if len(n.Pallets) > 0 {
		fmt.Fprintf(&b, "Pallets (%d): %s\n", len(n.Pallets), strings.Join(n.Pallets, ", "))
	}
	fmt.Fprintf(&b, "Boxes: %d\n", n.BoxCount)
	if n.Operator != "" {
		fmt.Fprintf(&b, "Dispatched by: %s\n", n.Operator)
	}
	fmt.Fprintf(&b, "Date: %s\n", n.Dispatched.Format("2006-01-02 15:04"))
	if n.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", n.Notes)
	}
	b.WriteString("\nThis is an auto-generated email. Please do not reply.\n")
	return b.String()
}
