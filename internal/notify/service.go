package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/wolfman30/onboardai/internal/demorequest"
	"github.com/wolfman30/onboardai/pkg/logging"
)

// SalesNotifier emails the sales inbox about new demo requests and contact
// messages. It implements demorequest.Notifier.
type SalesNotifier struct {
	email      EmailSender
	recipients []string
	appName    string
	logger     *logging.Logger
}

// NewSalesNotifier creates a notifier. With no sender or no recipients every
// call is a no-op.
func NewSalesNotifier(email EmailSender, recipients []string, appName string, logger *logging.Logger) *SalesNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	if appName == "" {
		appName = DefaultFromName
	}
	var cleaned []string
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, r)
		}
	}
	return &SalesNotifier{email: email, recipients: cleaned, appName: appName, logger: logger}
}

var _ demorequest.Notifier = (*SalesNotifier)(nil)

// DemoRequestReceived sends the lead summary to every recipient.
func (n *SalesNotifier) DemoRequestReceived(ctx context.Context, rec demorequest.StoredRequest) error {
	if !n.enabled() {
		n.logger.Debug("notify: sales email not configured, skipping", "request_id", rec.ID)
		return nil
	}
	msg := EmailMessage{
		ReplyTo: rec.Email,
		Subject: fmt.Sprintf("New demo request - %s", rec.CompanyName),
		Body:    demoRequestText(rec, n.appName),
		HTML:    demoRequestHTML(rec, n.appName),
	}
	return n.sendAll(ctx, msg, "request_id", rec.ID)
}

// ContactReceived forwards a contact-form message.
func (n *SalesNotifier) ContactReceived(ctx context.Context, id string, m demorequest.ContactMessage) error {
	if !n.enabled() {
		n.logger.Debug("notify: sales email not configured, skipping", "contact_id", id)
		return nil
	}
	subject := m.Subject
	if subject == "" {
		subject = "Contact form message"
	}
	msg := EmailMessage{
		ReplyTo: m.Email,
		Subject: fmt.Sprintf("[%s] %s", id, subject),
		Body:    fmt.Sprintf("From: %s <%s>\n\n%s\n\n- %s", m.Name, m.Email, m.Message, n.appName),
		HTML:    contactHTML(m, n.appName),
	}
	return n.sendAll(ctx, msg, "contact_id", id)
}

func (n *SalesNotifier) enabled() bool {
	return n.email != nil && len(n.recipients) > 0
}

func (n *SalesNotifier) sendAll(ctx context.Context, msg EmailMessage, idKey, id string) error {
	var failed int
	for _, recipient := range n.recipients {
		msg.To = recipient
		if err := n.email.Send(ctx, msg); err != nil {
			n.logger.Error("notify: failed to send email", "error", err, "to", recipient, idKey, id)
			failed++
			continue
		}
		n.logger.Info("notify: sales email sent", "to", recipient, idKey, id)
	}
	if failed > 0 {
		return fmt.Errorf("notify: %d notification(s) failed", failed)
	}
	return nil
}

type row struct {
	label, value string
}

func demoRequestRows(rec demorequest.StoredRequest) []row {
	industry := rec.Industry
	if ind, ok := demorequest.IndustryByID(rec.Industry); ok {
		industry = ind.Name
	}
	size := rec.CompanySize
	if cs, ok := demorequest.CompanySizeByID(rec.CompanySize); ok {
		size = cs.Label
	}
	rows := []row{
		{"Request ID", rec.ID},
		{"Company", rec.CompanyName},
		{"Industry", industry},
		{"Company size", size},
		{"Website", rec.Website},
		{"Name", rec.FullName},
		{"Job title", rec.JobTitle},
		{"Email", rec.Email},
		{"Phone", rec.Phone},
		{"Use case", rec.UseCase},
		{"Challenges", rec.Challenges},
		{"Timeline", rec.Timeline},
		{"Preferred slot", strings.TrimSpace(rec.PreferredDate + " " + rec.PreferredTime)},
		{"Notes", rec.AdditionalNotes},
		{"Received", rec.CreatedAt.UTC().Format(time.RFC1123)},
	}
	out := rows[:0]
	for _, r := range rows {
		if r.value != "" {
			out = append(out, r)
		}
	}
	return out
}

func demoRequestText(rec demorequest.StoredRequest, appName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s from %s requested a demo.\n\n", rec.FullName, rec.CompanyName)
	for _, r := range demoRequestRows(rec) {
		fmt.Fprintf(&b, "%s: %s\n", r.label, r.value)
	}
	fmt.Fprintf(&b, "\nPlease reach out within 24 hours.\n\n- %s", appName)
	return b.String()
}

func demoRequestHTML(rec demorequest.StoredRequest, appName string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: sans-serif; max-width: 600px;">`)
	fmt.Fprintf(&b, `<h2 style="color: #4f46e5;">New demo request</h2><p><strong>%s</strong> from <strong>%s</strong> requested a demo.</p>`,
		html.EscapeString(rec.FullName), html.EscapeString(rec.CompanyName))
	b.WriteString(`<table style="border-collapse: collapse; margin: 20px 0;">`)
	for _, r := range demoRequestRows(rec) {
		fmt.Fprintf(&b, `<tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;"><strong>%s:</strong></td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>`,
			r.label, html.EscapeString(r.value))
	}
	fmt.Fprintf(&b, `</table><p style="color: #6b7280; font-size: 12px; margin-top: 20px;">- %s</p></div>`, html.EscapeString(appName))
	return b.String()
}

func contactHTML(m demorequest.ContactMessage, appName string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: sans-serif; max-width: 600px;">`)
	fmt.Fprintf(&b, `<p><strong>From:</strong> %s &lt;%s&gt;</p>`, html.EscapeString(m.Name), html.EscapeString(m.Email))
	fmt.Fprintf(&b, `<p style="white-space: pre-wrap;">%s</p>`, html.EscapeString(m.Message))
	fmt.Fprintf(&b, `<p style="color: #6b7280; font-size: 12px; margin-top: 20px;">- %s</p></div>`, html.EscapeString(appName))
	return b.String()
}
