// Package kv реализует хранилище коллекций сервиса: две фиксированные
// логические коллекции (подписки и использованные коды M-PESA), каждая
// хранится целиком как UTF-8 JSON-массив под своим ключом. Запись всегда
// заменяет значение целиком, отсутствие ключа равнозначно пустой коллекции.
package kv

import "context"

// Фиксированные ключи коллекций.
const (
	KeySubscriptions = "thegurutips_subscriptions"
	KeyMpesaCodes    = "thegurutips_mpesa_codes"
)

// Store — контракт хранилища коллекций. Get возвращает nil без ошибки,
// если ключ отсутствует. Update выполняет read-modify-write одного ключа
// в одной транзакции хранилища, закрывая гонку потерянного обновления
// между чтением и записью.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error
	Close() error
}
