package models

import (
	"time"

	"github.com/BreezDev/kimq/internal/domain"
)

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	ServiceID  int64  `json:"serviceId"`
	EmployeeID int64  `json:"employeeId"`
	Date       string `json:"date"`      // "2025-10-15"
	StartTime  string `json:"startTime"` // "10:00"
	Status     string `json:"status"`

	// Денормализованные данные
	ServiceName  string  `json:"serviceName"`
	PriceCents   int64   `json:"priceCents"`
	DepositCents int64   `json:"depositCents"`
	EmployeeName string  `json:"employeeName"`
	ClientName   string  `json:"clientName"`
	ClientEmail  string  `json:"clientEmail"`
	ClientPhone  *string `json:"clientPhone,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	PaymentIntentID *string `json:"paymentIntentId,omitempty"`
	PaymentStatus   *string `json:"paymentStatus,omitempty"`
	AmountCents     int64   `json:"amountCents"`

	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainDetail конвертирует domain модель в DTO
func FromDomainDetail(d *domain.AppointmentDetail) *AppointmentResponse {
	if d == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              d.ID,
		ServiceID:       d.ServiceID,
		EmployeeID:      d.EmployeeID,
		Date:            d.StartTime.Format(domain.DateFormat),
		StartTime:       d.StartTime.Format(domain.TimeFormat),
		Status:          string(d.Status),
		ServiceName:     d.ServiceName,
		PriceCents:      d.PriceCents,
		DepositCents:    d.DepositCents,
		EmployeeName:    d.EmployeeName,
		ClientName:      d.ClientName,
		ClientEmail:     d.ClientEmail,
		ClientPhone:     d.ClientPhone,
		Notes:           d.Notes,
		PaymentIntentID: d.PaymentIntentID,
		PaymentStatus:   d.PaymentStatus,
		AmountCents:     d.AmountCents,
		CreatedAt:       d.CreatedAt,
	}
}

// FromDomainDetailList конвертирует список domain моделей в DTO
func FromDomainDetailList(details []*domain.AppointmentDetail) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(details)),
	}

	for _, d := range details {
		if detailResp := FromDomainDetail(d); detailResp != nil {
			resp.Appointments = append(resp.Appointments, *detailResp)
		}
	}

	return resp
}
