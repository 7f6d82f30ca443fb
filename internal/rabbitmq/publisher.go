package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/VictonicTechnologies/thegurutips/internal/models"
)

// Publisher публикует события платежей через открытый канал.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создает новый Publisher.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishAccepted отправляет событие о принятом платеже.
func (p *Publisher) PublishAccepted(event models.PaymentAcceptedEvent) error {
	return PublishMessage(p.ch, Exchange, AcceptedRoutingKey, event)
}
