package payments

// Intent результат создания платежного намерения
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
}

// simulatedStatus статус намерения при работе без ключа провайдера
const simulatedStatus = "simulated"
