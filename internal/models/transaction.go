package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord — запись об использованном коде подтверждения M-PESA.
// Записи неизменяемы и никогда не удаляются: код, однажды принятый,
// не может быть использован повторно.
type TransactionRecord struct {
	Code       string    `json:"code"`        // Код подтверждения, 10 символов A-Z0-9
	RecordedAt time.Time `json:"recorded_at"` // Момент принятия кода
}

// ParsedConfirmation — результат разбора сообщения с подтверждением оплаты.
// Структура живёт только между разбором и решением вызывающей стороны,
// в хранилище не попадает.
type ParsedConfirmation struct {
	Code   string          // Извлечённый код подтверждения
	Amount decimal.Decimal // Сумма платежа из сообщения
}

// ValidationRequest используется для приёма запроса на проверку оплаты.
type ValidationRequest struct {
	PlanName string `json:"plan_name" validate:"required"` // Тарифный план
	Price    string `json:"price" validate:"required"`     // Цена плана, например "Ksh 1,500"
	Message  string `json:"message" validate:"required"`   // Вставленное сообщение M-PESA
}

// StkPushRequest используется для приёма запроса на STK push.
type StkPushRequest struct {
	PlanName string `json:"plan_name" validate:"required"` // Тарифный план
	Phone    string `json:"phone" validate:"required"`     // Номер телефона M-PESA
}

// GrantRequest используется для приёма запроса на выдачу подписки без оплаты.
type GrantRequest struct {
	PlanName string `json:"plan_name" validate:"required"` // Тарифный план
}

// PaymentAcceptedEvent публикуется в брокер после успешной проверки оплаты.
type PaymentAcceptedEvent struct {
	SubscriptionID string    `json:"subscription_id"`
	PlanName       string    `json:"plan_name"`
	Code           string    `json:"code"`
	Amount         string    `json:"amount"`
	AcceptedAt     time.Time `json:"accepted_at"`
}
