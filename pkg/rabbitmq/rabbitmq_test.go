package rabbitmq_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcstore/internal/models"
	"pcstore/pkg/rabbitmq"
)

func TestSaleEventEncoding(t *testing.T) {
	event := models.NewSaleEvent(&models.Receipt{
		ID:        "receipt-1",
		Lines:     []models.ReceiptLine{{ProductID: "cpu-a", Name: "CPU A", Quantity: 1, UnitPrice: 320, Subtotal: 320}},
		Total:     320,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})

	msg, err := rabbitmq.EncodeSaleEvent(event)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, models.SaleEventType, msg.Type)
	assert.Equal(t, "receipt-1", msg.MessageId)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)

	decoded, err := rabbitmq.DecodeSaleEvent(amqp.Delivery{Body: msg.Body})
	require.NoError(t, err)
	assert.Equal(t, event.ReceiptID, decoded.ReceiptID)
	assert.Equal(t, event.Total, decoded.Total)
	assert.Equal(t, event.Lines, decoded.Lines)
	assert.True(t, event.OccurredAt.Equal(decoded.OccurredAt))
}

func TestDecodeSaleEventRejectsGarbage(t *testing.T) {
	_, err := rabbitmq.DecodeSaleEvent(amqp.Delivery{Body: []byte("{"), DeliveryTag: 7})
	assert.Error(t, err)
}

func TestLogSaleEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	require.NoError(t, rabbitmq.LogSaleEvent(logger)(models.SaleEvent{ReceiptID: "r-9", Total: 10}))
	assert.Contains(t, buf.String(), "Sale completed")
	assert.Contains(t, buf.String(), "r-9")
}
