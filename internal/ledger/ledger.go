// Package ledger ведёт журнал использованных кодов подтверждения M-PESA.
// Журнал только пополняется: принятый код защищён от повторного
// использования навсегда, независимо от срока жизни подписки.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/VictonicTechnologies/thegurutips/internal/models"
	"github.com/VictonicTechnologies/thegurutips/internal/storage/kv"
)

// ErrCodeUsed — код уже был принят ранее.
var ErrCodeUsed = errors.New("transaction code already used")

// Ledger реализует журнал кодов поверх kv.Store.
type Ledger struct {
	store kv.Store
	log   *slog.Logger
	now   func() time.Time
}

// New создает новый Ledger.
func New(store kv.Store, log *slog.Logger) *Ledger {
	return &Ledger{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// IsCodeUsed сообщает, был ли код принят ранее. Журнал читается из
// хранилища при каждом вызове: кеш в памяти не считается источником
// истины, записи могли появиться из другого процесса.
func (l *Ledger) IsCodeUsed(ctx context.Context, code string) (bool, error) {
	const op = "ledger.IsCodeUsed"

	records, err := l.load(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	for _, rec := range records {
		if rec.Code == code {
			return true, nil
		}
	}
	return false, nil
}

// Record вносит код в журнал. Проверка уникальности и дозапись происходят
// в одной транзакции хранилища; повторный код возвращает ErrCodeUsed.
func (l *Ledger) Record(ctx context.Context, code string) error {
	const op = "ledger.Record"

	err := l.store.Update(ctx, kv.KeyMpesaCodes, func(old []byte) ([]byte, error) {
		records, err := decode(old)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if rec.Code == code {
				return nil, ErrCodeUsed
			}
		}
		records = append(records, models.TransactionRecord{
			Code:       code,
			RecordedAt: l.now(),
		})
		return json.Marshal(records)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	l.log.Info("recorded transaction code", slog.String("code", code))
	return nil
}

func (l *Ledger) load(ctx context.Context) ([]models.TransactionRecord, error) {
	raw, err := l.store.Get(ctx, kv.KeyMpesaCodes)
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

// decode разбирает сохранённую коллекцию; отсутствующий ключ — пустой журнал.
func decode(raw []byte) ([]models.TransactionRecord, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var records []models.TransactionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	return records, nil
}
