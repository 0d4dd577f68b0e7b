package get_billing

import (
	"time"

	"github.com/BreezDev/kimq/internal/domain"
	appointmentModels "github.com/BreezDev/kimq/internal/service/appointments/models"
	billingService "github.com/BreezDev/kimq/internal/service/billing"
)

// PaymentResponse HTTP модель платежа
type PaymentResponse struct {
	ID              int64  `json:"id"`
	PaymentIntentID string `json:"paymentIntentId"`
	AmountCents     int64  `json:"amountCents"`
	Status          string `json:"status"`
	Category        string `json:"category"`
	CreatedAt       string `json:"createdAt"`
}

// StatementResponse HTTP модель биллинговой выписки клиента
type StatementResponse struct {
	Email        string                                  `json:"email"`
	Payments     []PaymentResponse                       `json:"payments"`
	Appointments []appointmentModels.AppointmentResponse `json:"appointments"`
}

// FromStatement конвертирует выписку в HTTP response
func FromStatement(email string, stmt *billingService.Statement) *StatementResponse {
	resp := &StatementResponse{
		Email:        email,
		Payments:     make([]PaymentResponse, 0, len(stmt.Payments)),
		Appointments: appointmentModels.FromDomainDetailList(stmt.Appointments).Appointments,
	}
	for _, p := range stmt.Payments {
		resp.Payments = append(resp.Payments, fromDomainPayment(p))
	}
	return resp
}

func fromDomainPayment(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		PaymentIntentID: p.PaymentIntentID,
		AmountCents:     p.AmountCents,
		Status:          p.Status,
		Category:        string(p.Category),
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}
