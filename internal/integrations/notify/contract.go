package notify

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Config учетные данные каналов уведомлений.
// Пустые значения отключают соответствующий канал без ошибки.
type Config struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}
