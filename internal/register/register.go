// Package register ведёт реестр выданных подписок. Каждая подписка
// истекает в ближайшую местную полночь после выдачи; истёкшие записи
// лениво вычищаются при чтении, и вычищенный реестр сразу сохраняется,
// чтобы устаревшие записи не появлялись снова.
package register

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/VictonicTechnologies/thegurutips/internal/lib/daybound"
	"github.com/VictonicTechnologies/thegurutips/internal/models"
	"github.com/VictonicTechnologies/thegurutips/internal/storage/kv"
)

// Register реализует реестр подписок поверх kv.Store.
type Register struct {
	store kv.Store
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// New создает новый Register.
func New(store kv.Store, log *slog.Logger) *Register {
	return &Register{
		store: store,
		log:   log,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Active возвращает действующие подписки. Истёкшие записи отбрасываются,
// и если что-то было отброшено, ужатая коллекция записывается обратно
// до возврата результата.
func (r *Register) Active(ctx context.Context) ([]models.Subscription, error) {
	const op = "register.Active"

	var active []models.Subscription
	err := r.store.Update(ctx, kv.KeySubscriptions, func(old []byte) ([]byte, error) {
		subs, err := decode(old)
		if err != nil {
			return nil, err
		}
		active = sweep(subs, r.now())
		if len(active) == len(subs) {
			return old, nil
		}
		r.log.Info("purged expired subscriptions",
			slog.Int("removed", len(subs)-len(active)))
		return encode(active)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return active, nil
}

// Grant выдаёт подписку на план planName до ближайшей полуночи
// и возвращает её идентификатор. Выдача идёт через общий проход
// с вычисткой, так что истёкшие записи убираются той же транзакцией.
func (r *Register) Grant(ctx context.Context, planName string) (string, error) {
	const op = "register.Grant"

	sub := models.Subscription{
		ID:        r.newID(),
		PlanName:  planName,
		ExpiresAt: daybound.NextMidnight(r.now()),
	}

	err := r.store.Update(ctx, kv.KeySubscriptions, func(old []byte) ([]byte, error) {
		subs, err := decode(old)
		if err != nil {
			return nil, err
		}
		return encode(append(sweep(subs, r.now()), sub))
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	r.log.Info("granted subscription",
		slog.String("id", sub.ID),
		slog.String("plan", planName),
		slog.Time("expires_at", sub.ExpiresAt))
	return sub.ID, nil
}

// IsActive сообщает, есть ли действующая подписка на план planName.
// Сравнение имени точное, с учётом регистра.
func (r *Register) IsActive(ctx context.Context, planName string) (bool, error) {
	const op = "register.IsActive"

	active, err := r.Active(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	for _, sub := range active {
		if sub.PlanName == planName {
			return true, nil
		}
	}
	return false, nil
}

// sweep отбрасывает записи, чей срок наступил к моменту now.
func sweep(subs []models.Subscription, now time.Time) []models.Subscription {
	var active []models.Subscription
	for _, sub := range subs {
		if !daybound.PastMidnight(sub.ExpiresAt, now) {
			active = append(active, sub)
		}
	}
	return active
}

func decode(raw []byte) ([]models.Subscription, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var subs []models.Subscription
	if err := json.Unmarshal(raw, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// encode сериализует коллекцию; пустая коллекция пишется как [],
// а не как null.
func encode(subs []models.Subscription) ([]byte, error) {
	if subs == nil {
		subs = []models.Subscription{}
	}
	return json.Marshal(subs)
}
