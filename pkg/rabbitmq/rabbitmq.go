package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"

	"pcstore/internal/logging"
	"pcstore/internal/models"
)

// SalesQueue is the durable queue receiving sale.completed events.
const SalesQueue = "sales_queue"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
	log     *logrus.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares SalesQueue.
func NewClient(cfg Config, logger *logrus.Logger) (*Client, error) {
	log := logging.OrDiscard(logger)

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareSalesQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Infof("RabbitMQ client connected and %s declared", SalesQueue)
	return &Client{conn: conn, channel: ch, log: log}, nil
}

func declareSalesQueue(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		SalesQueue, // name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", SalesQueue, err)
	}
	return q, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// EncodeSaleEvent renders the message published for a sale.
func EncodeSaleEvent(event models.SaleEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal sale event to JSON: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         event.Type,
		MessageId:    event.ReceiptID,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}, nil
}

// DecodeSaleEvent parses a delivery produced by PublishSaleCompleted.
func DecodeSaleEvent(msg amqp.Delivery) (models.SaleEvent, error) {
	var event models.SaleEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return event, fmt.Errorf("failed to decode sale event %d: %w", msg.DeliveryTag, err)
	}
	return event, nil
}

// PublishSaleCompleted publishes event to SalesQueue through the default exchange.
func (c *Client) PublishSaleCompleted(ctx context.Context, event models.SaleEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := EncodeSaleEvent(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	err = c.channel.Publish(
		"",         // exchange: default exchange
		SalesQueue, // routing key: the queue name
		false,      // mandatory
		false,      // immediate
		msg)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.log.Debugf("Sent sale event for receipt %s", event.ReceiptID)
	return nil
}

// ConsumeSaleEvents delivers every message on SalesQueue to handler until ctx
// is done. Messages are acked on success and requeued once on failure.
func (c *Client) ConsumeSaleEvents(ctx context.Context, handler func(models.SaleEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareSalesQueue(c.channel)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Infof("Waiting for sale events on %s", queue.Name)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.handle(msg, handler)
			}
		}
	}()
	return nil
}

func (c *Client) handle(msg amqp.Delivery, handler func(models.SaleEvent) error) {
	event, err := DecodeSaleEvent(msg)
	if err == nil {
		err = handler(event)
	}
	if err != nil {
		c.log.Errorf("Error processing message %d: %v", msg.DeliveryTag, err)
		// Redelivered messages are dropped to avoid a poison loop.
		if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
			c.log.Errorf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		c.log.Errorf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
	}
}

// LogSaleEvent is the default consumer used by the serve command.
func LogSaleEvent(logger *logrus.Logger) func(models.SaleEvent) error {
	log := logging.OrDiscard(logger)
	return func(event models.SaleEvent) error {
		log.WithFields(logrus.Fields{
			"receipt_id": event.ReceiptID,
			"total":      event.Total,
			"lines":      len(event.Lines),
		}).Info("Sale completed")
		return nil
	}
}
