package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type Sender interface {
	Send(to string, subject string, body string) error
}

// SMTPSender envia via SMTP sem autenticação (relay interno ou Mailpit).
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(host string, port string, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@barber-booking.local"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

func (s *SMTPSender) Send(to string, subject string, body string) error {
	msg := buildMessage(s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}

// ======================================================
// EmailNotifier
// ======================================================

type EmailNotifier struct {
	sender Sender
}

func NewEmailNotifier(sender Sender) *EmailNotifier {
	return &EmailNotifier{sender: sender}
}

func (n *EmailNotifier) AppointmentConfirmed(_ context.Context, to Recipient, date, start string) error {
	return n.send(to, "Agendamento confirmado",
		fmt.Sprintf("Olá %s, seu horário em %s às %s está confirmado.", to.Name, date, start))
}

func (n *EmailNotifier) SlotAssigned(_ context.Context, to Recipient, date, start string) error {
	return n.send(to, "Vaga liberada para você",
		fmt.Sprintf("Olá %s, abriu uma vaga em %s às %s e ela já é sua. Agendamento confirmado.", to.Name, date, start))
}

func (n *EmailNotifier) AppointmentCancelled(_ context.Context, to Recipient, date, start string) error {
	return n.send(to, "Agendamento cancelado",
		fmt.Sprintf("Olá %s, seu horário em %s às %s foi cancelado.", to.Name, date, start))
}

func (n *EmailNotifier) WaitingListPosition(_ context.Context, to Recipient, position int) error {
	return n.send(to, "Lista de espera",
		fmt.Sprintf("Olá %s, você está na posição %d da lista de espera.", to.Name, position))
}

func (n *EmailNotifier) send(to Recipient, subject, body string) error {
	if strings.TrimSpace(to.Email) == "" {
		return fmt.Errorf("recipient without email")
	}
	return n.sender.Send(to.Email, subject, body)
}

var _ Notifier = (*EmailNotifier)(nil)
