package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
)

// Mailer sends a rendered report as an email attachment over SMTP.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewMailer creates a Mailer for the given SMTP server.
func NewMailer(host string, port int, user, password, from string) *Mailer {
	return &Mailer{host: host, port: port, user: user, password: password, from: from}
}

// SendReport emails the PDF to the recipient.
func (m *Mailer) SendReport(to, subject string, pdf []byte) error {
	msg, err := buildMessage(m.from, to, subject, pdf)
	if err != nil {
		return fmt.Errorf("build report email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send report email: %w", err)
	}
	return nil
}

// buildMessage assembles a multipart MIME message with a short text body
// and the PDF attached.
func buildMessage(from, to, subject string, pdf []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())

	body, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprint(body, "Your interview feedback report is attached.\r\n")

	attachment, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/pdf"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {`attachment; filename="interview-report.pdf"`},
	})
	if err != nil {
		return nil, err
	}

	encoded := base64.StdEncoding.EncodeToString(pdf)
	// RFC 2045 limits encoded lines to 76 characters.
	for len(encoded) > 0 {
		n := min(76, len(encoded))
		if _, err := fmt.Fprintf(attachment, "%s\r\n", encoded[:n]); err != nil {
			return nil, err
		}
		encoded = encoded[n:]
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AttachmentFilename builds a stable filename for a session's report.
func AttachmentFilename(sessionID string) string {
	id := sessionID
	if i := strings.IndexByte(id, '-'); i > 0 {
		id = id[:i]
	}
	return fmt.Sprintf("interview-report-%s.pdf", id)
}
