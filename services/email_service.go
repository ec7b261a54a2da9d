package services

import (
	"fmt"
	"time"

	"urbancard/config"

	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки email
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer: dialer,
		from:   cfg.SMTP.From,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendWelcome отправляет приветственное письмо новому пользователю
func (s *EmailService) SendWelcome(to, name string) error {
	subject := "Добро пожаловать"
	body := fmt.Sprintf(`
		<h2>Добро пожаловать, %s!</h2>
		<p>Для вас создана учетная запись.</p>
		<p>Дата регистрации: %s</p>
	`, name, time.Now().Format("02.01.2006 15:04:05"))

	return s.SendEmail(to, subject, body)
}

// SendAccountDeactivated отправляет уведомление о деактивации учетной записи
func (s *EmailService) SendAccountDeactivated(to string) error {
	subject := "Учетная запись деактивирована"
	body := fmt.Sprintf(`
		<h2>Учетная запись деактивирована</h2>
		<p>Ваша учетная запись и привязанные к ней карты были деактивированы.</p>
		<p>Дата: %s</p>
		<p>Если вы считаете, что это ошибка, свяжитесь с поддержкой.</p>
	`, time.Now().Format("02.01.2006 15:04:05"))

	return s.SendEmail(to, subject, body)
}
