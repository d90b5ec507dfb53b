package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/pkg/mailer"
)

// Outcome tells the consumer loop how to settle a delivery.
type Outcome int

const (
	Ack Outcome = iota
	Drop
	Retry
)

var errBadPayload = errors.New("bad event payload")

// Notifier turns account events into operator emails.
type Notifier struct {
	Mail    mailer.Sender
	To      string
	AppName string
	Timeout time.Duration

	// RetryDelay is how long a failed send waits before it is requeued
	RetryDelay time.Duration
}

const defaultRetryDelay = 5 * time.Second

// Handle decides the fate of one message body. Only registrations and deletions
// produce mail; other event types are acknowledged untouched.
func (n *Notifier) Handle(ctx context.Context, body []byte) (Outcome, error) {
	var evt application.AccountEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return Drop, fmt.Errorf("%w: %v", errBadPayload, err)
	}
	if evt.Type == "" {
		return Drop, fmt.Errorf("%w: missing type", errBadPayload)
	}

	var action string
	switch evt.Type {
	case application.EventUserRegistered:
		action = "registered"
	case application.EventUserDeleted:
		action = "deleted"
	default:
		return Ack, nil
	}

	msg, err := mailer.RenderAccountNotice(mailer.AccountNotice{
		AppName:    n.AppName,
		Action:     action,
		UserID:     evt.UserID,
		Username:   evt.Username,
		FirstName:  evt.FirstName,
		LastName:   evt.LastName,
		OccurredAt: evt.OccurredAt,
	})
	if err != nil {
		return Drop, err
	}

	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := n.Mail.Send(c, n.To, msg); err != nil {
		return Retry, fmt.Errorf("send notification: %w", err)
	}
	return Ack, nil
}

// Consume drains deliveries until the channel closes or ctx is cancelled.
func Consume(ctx context.Context, deliveries <-chan amqp.Delivery, n *Notifier, logger *logrus.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			outcome, err := n.Handle(ctx, d.Body)
			log := logger.WithFields(logrus.Fields{"type": d.Type, "delivery_tag": d.DeliveryTag})
			switch outcome {
			case Ack:
				_ = d.Ack(false)
			case Drop:
				log.WithError(err).Warn("dropping event")
				_ = d.Nack(false, false)
			case Retry:
				delay := n.RetryDelay
				if delay <= 0 {
					delay = defaultRetryDelay
				}
				log.WithError(err).WithField("retry_in", delay).Error("event delivery failed, requeueing")
				// hold the delivery so a dead mail provider does not spin the queue
				select {
				case <-ctx.Done():
				case <-time.After(delay):
				}
				_ = d.Nack(false, true)
			}
		}
	}
}
