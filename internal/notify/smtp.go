package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Notifier sends fire-and-forget emails. Delivery is never required for
// correctness: Send swallows errors after logging-by-return and callers
// invoke it in a goroutine and drop the result.
type Notifier struct {
	addr string
	from string
	auth smtp.Auth
}

func NewNotifier(addr, from, username, password string) *Notifier {
	if addr == "" {
		return nil
	}
	var auth smtp.Auth
	if username != "" {
		host := addr
		if idx := strings.Index(addr, ":"); idx >= 0 {
			host = addr[:idx]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &Notifier{addr: addr, from: from, auth: auth}
}

func (n *Notifier) Send(to, subject, body string) error {
	if n == nil {
		return nil
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", n.from, to, subject, body)
	return smtp.SendMail(n.addr, n.auth, n.from, []string{to}, []byte(msg))
}
