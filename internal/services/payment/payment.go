// Package payment содержит бизнес-логику проверки оплаты: разбор
// вставленного сообщения M-PESA, защита от повторного использования кода
// и выдача подписки на оплаченный план.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/VictonicTechnologies/thegurutips/internal/ledger"
	"github.com/VictonicTechnologies/thegurutips/internal/lib/sl"
	"github.com/VictonicTechnologies/thegurutips/internal/metrics"
	"github.com/VictonicTechnologies/thegurutips/internal/models"
	"github.com/VictonicTechnologies/thegurutips/internal/mpesa"
)

// CodeLedger определяет методы журнала использованных кодов.
type CodeLedger interface {
	// IsCodeUsed сообщает, был ли код принят ранее.
	IsCodeUsed(ctx context.Context, code string) (bool, error)
	// Record вносит код в журнал.
	Record(ctx context.Context, code string) error
}

// SubscriptionRegister определяет методы реестра подписок.
type SubscriptionRegister interface {
	// Grant выдаёт подписку на план и возвращает её идентификатор.
	Grant(ctx context.Context, planName string) (string, error)
}

// EventPublisher публикует событие о принятом платеже.
type EventPublisher interface {
	PublishAccepted(event models.PaymentAcceptedEvent) error
}

// Result — итог успешной проверки оплаты.
type Result struct {
	SubscriptionID string
	Confirmation   models.ParsedConfirmation
}

// ValidationService связывает разбор сообщения, журнал кодов и реестр подписок.
type ValidationService struct {
	ledger   CodeLedger
	register SubscriptionRegister
	events   EventPublisher
	log      *slog.Logger
}

// New создает новый ValidationService. events может быть nil,
// тогда события не публикуются.
func New(codes CodeLedger, register SubscriptionRegister, events EventPublisher, log *slog.Logger) *ValidationService {
	return &ValidationService{
		ledger:   codes,
		register: register,
		events:   events,
		log:      log,
	}
}

// Validate проверяет вставленное сообщение об оплате: разбирает код и сумму,
// отклоняет повторно использованные коды и при успехе выдаёт подписку
// на план до ближайшей полуночи.
func (s *ValidationService) Validate(ctx context.Context, req models.ValidationRequest) (Result, error) {
	confirmation, err := mpesa.Parse(req.Message, req.Price)
	if err != nil {
		s.count(err)
		return Result{}, err
	}

	used, err := s.ledger.IsCodeUsed(ctx, confirmation.Code)
	if err != nil {
		s.count(err)
		return Result{}, fmt.Errorf("check code: %w", err)
	}
	if used {
		metrics.ValidationTotal.WithLabelValues(metrics.ResultCodeUsed).Inc()
		return Result{}, fmt.Errorf("code %s: %w", confirmation.Code, ledger.ErrCodeUsed)
	}

	if err := s.ledger.Record(ctx, confirmation.Code); err != nil {
		s.count(err)
		return Result{}, fmt.Errorf("record code: %w", err)
	}

	id, err := s.register.Grant(ctx, req.PlanName)
	if err != nil {
		// код к этому моменту уже в журнале и повторно не примется
		s.count(err)
		return Result{}, fmt.Errorf("grant subscription: %w", err)
	}

	s.log.Info("payment validated",
		slog.String("plan", req.PlanName),
		slog.String("code", confirmation.Code),
		slog.String("amount", confirmation.Amount.String()))
	metrics.ValidationTotal.WithLabelValues(metrics.ResultAccepted).Inc()

	s.publish(models.PaymentAcceptedEvent{
		SubscriptionID: id,
		PlanName:       req.PlanName,
		Code:           confirmation.Code,
		Amount:         confirmation.Amount.String(),
		AcceptedAt:     time.Now(),
	})

	return Result{SubscriptionID: id, Confirmation: confirmation}, nil
}

// publish отправляет событие best effort: ошибка брокера только логируется.
func (s *ValidationService) publish(event models.PaymentAcceptedEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishAccepted(event); err != nil {
		s.log.Warn("failed to publish payment event", sl.Err(err))
	}
}

func (s *ValidationService) count(err error) {
	switch {
	case errors.Is(err, mpesa.ErrMalformedMessage):
		metrics.ValidationTotal.WithLabelValues(metrics.ResultMalformed).Inc()
	case errors.Is(err, mpesa.ErrAmountMismatch):
		metrics.ValidationTotal.WithLabelValues(metrics.ResultAmountMismatch).Inc()
	case errors.Is(err, ledger.ErrCodeUsed):
		metrics.ValidationTotal.WithLabelValues(metrics.ResultCodeUsed).Inc()
	default:
		metrics.ValidationTotal.WithLabelValues(metrics.ResultStorageError).Inc()
	}
}
