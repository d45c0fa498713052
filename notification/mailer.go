package notification

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"event_ticketing/config"
	"event_ticketing/model"
	"event_ticketing/utils"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

type ticketLine struct {
	Code     string
	TypeName string
	QRFile   string
}

type ticketEmailData struct {
	BuyerName  string
	EventTitle string
	Venue      string
	City       string
	StartsAt   string
	OrderLink  string
	Tickets    []ticketLine
}

// Mailer sends ticket confirmations over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	appURL string
	tmpl   *template.Template
	log    *slog.Logger
}

func NewMailer(cfg config.MailConfig, log *slog.Logger) (*Mailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/ticket_confirmation.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		appURL: cfg.AppURL,
		tmpl:   tmpl,
		log:    log,
	}, nil
}

func (m *Mailer) SendTicketConfirmation(ctx context.Context, buyer *model.Account, event *model.Event, tickets []model.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := m.buildTicketMessage(buyer, event, tickets)
	if err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send ticket email to %s: %w", buyer.Email, err)
	}
	m.log.Info("ticket email sent", slog.String("to", buyer.Email), slog.Int("tickets", len(tickets)))
	return nil
}

func (m *Mailer) buildTicketMessage(buyer *model.Account, event *model.Event, tickets []model.Ticket) (*gomail.Message, error) {
	if len(tickets) == 0 {
		return nil, fmt.Errorf("no tickets to send")
	}
	msg := gomail.NewMessage()

	data := ticketEmailData{
		BuyerName: buyer.Name,
		Tickets:   make([]ticketLine, 0, len(tickets)),
	}
	if data.BuyerName == "" {
		data.BuyerName = buyer.Email
	}
	if event != nil {
		data.EventTitle = event.Title
		data.Venue = event.Venue
		data.City = event.City
		data.StartsAt = event.StartsAt.Format("Mon, 02 Jan 2006 15:04 MST")
	}
	if m.appURL != "" {
		data.OrderLink = fmt.Sprintf("%s/orders/%s", m.appURL, tickets[0].OrderID)
	}

	for _, t := range tickets {
		line := ticketLine{Code: t.TicketCode}
		if t.TicketType != nil {
			line.TypeName = t.TicketType.Name
		}
		png, err := utils.GenerateQRCode(t.VerificationPayload, utils.TicketQRSize)
		if err != nil {
			m.log.Warn("ticket qr not generated", slog.String("ticket_code", t.TicketCode), slog.String("error", err.Error()))
		} else {
			line.QRFile = t.TicketCode + ".png"
			msg.Embed(line.QRFile, gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(png)
				return err
			}))
		}
		data.Tickets = append(data.Tickets, line)
	}

	var body bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&body, "ticket_confirmation.html", data); err != nil {
		return nil, fmt.Errorf("render ticket email: %w", err)
	}

	msg.SetHeader("From", m.from)
	msg.SetHeader("To", buyer.Email)
	msg.SetHeader("Subject", "Your tickets for "+data.EventTitle)
	msg.SetBody("text/html", body.String())
	return msg, nil
}

// LogNotifier stands in for the mailer when SMTP is not configured.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendTicketConfirmation(_ context.Context, buyer *model.Account, _ *model.Event, tickets []model.Ticket) error {
	n.log.Info("smtp disabled, ticket email not sent", slog.String("to", buyer.Email), slog.Int("tickets", len(tickets)))
	return nil
}
