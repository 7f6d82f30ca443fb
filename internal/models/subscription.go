// Package models содержит доменные структуры: подписки, записи о платежах
// и вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Subscription представляет выданную подписку на тарифный план.
// Подписка всегда истекает в ближайшую местную полночь после выдачи,
// после чего лениво удаляется при следующем чтении реестра.
type Subscription struct {
	ID        string    `json:"id"`         // Уникальный идентификатор (uuid)
	PlanName  string    `json:"plan_name"`  // Название тарифного плана
	ExpiresAt time.Time `json:"expires_at"` // Момент истечения, ближайшая полночь
}

// Expired сообщает, истекла ли подписка к моменту now.
func (s Subscription) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
