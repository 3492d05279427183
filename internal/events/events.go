// Package events publishes ledger domain events to RabbitMQ so that
// downstream consumers (notifiers, exporters) can react to postings
// without polling the database.
package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"hearth/internal/logger"
)

const (
	RoutingKeyExpensePosted      = "expense.posted"
	RoutingKeySettlementRecorded = "settlement.recorded"
)

// ExpensePosted is emitted after an expense commits to the ledger.
type ExpensePosted struct {
	HouseholdID uint   `json:"household_id"`
	ExpenseID   int64  `json:"expense_id"`
	Name        string `json:"name"`
	Amount      int64  `json:"amount"`
	PayerID     string `json:"payer_id"`
	Type        string `json:"type"`
	Tick        int64  `json:"tick"`
}

// SettlementRecorded is emitted after a settlement commits.
type SettlementRecorded struct {
	HouseholdID  uint   `json:"household_id"`
	SettlementID int64  `json:"settlement_id"`
	FromUserID   string `json:"from_user_id"`
	ToUserID     string `json:"to_user_id"`
	Amount       int64  `json:"amount"`
	Tick         int64  `json:"tick"`
}

// Publisher writes JSON messages to a durable direct exchange. A nil
// Publisher is valid and drops every message, so the broker stays
// optional in development and tests.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher connects to the broker and declares the exchange and a
// durable queue bound to the two ledger routing keys.
func NewPublisher(url, exchange, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	for _, key := range []string{RoutingKeyExpensePosted, RoutingKeySettlementRecorded} {
		if err := ch.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, err
		}
	}

	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish marshals payload as JSON and sends it with the given routing
// key. Failures are logged, not returned; event delivery is best effort
// and must never roll back a committed ledger write.
func (p *Publisher) Publish(routingKey string, payload interface{}) {
	if p == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Get().Errorw("failed to marshal event", "routing_key", routingKey, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		logger.Get().Errorw("failed to publish event", "routing_key", routingKey, "error", err)
	}
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
