package list_services

import "github.com/BreezDev/kimq/internal/domain"

// ServiceResponse HTTP модель услуги каталога
type ServiceResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	PriceCents   int64   `json:"priceCents"`
	DepositCents int64   `json:"depositCents"`
	ImageURL     *string `json:"imageUrl,omitempty"`
}

// ListServicesResponse HTTP модель ответа со списком услуг
type ListServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomain конвертирует domain модели в HTTP response
func FromDomain(services []*domain.Service) *ListServicesResponse {
	resp := &ListServicesResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, svc := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:           svc.ID,
			Name:         svc.Name,
			Description:  svc.Description,
			PriceCents:   svc.PriceCents,
			DepositCents: svc.DepositCents,
			ImageURL:     svc.ImageURL,
		})
	}
	return resp
}
