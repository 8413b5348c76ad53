package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendDispatchReport envia o resumo da campanha ao corretor quando a fila
// termina de processar a corrida.
func (s *EmailSender) SendDispatchReport(to, runID string, sent, failed int) error {
	data := DispatchReportData{
		RunID:  runID,
		Sent:   sent,
		Failed: failed,
		Total:  sent + failed,
	}

	tmplPath := filepath.Join("templates", "dispatch_report.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@triggercrm.com.br")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Relatório do disparo %s", runID))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
