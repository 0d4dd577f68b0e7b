package get_billing

import (
	"context"

	billingService "github.com/BreezDev/kimq/internal/service/billing"
)

type BillingService interface {
	GetStatement(ctx context.Context, email string) (*billingService.Statement, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
