package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-finance/internal/reporting/application"
	reporting "creator-finance/internal/reporting/domain"
)

type publishedMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	mu        sync.Mutex
	published []publishedMessage
	err       error
	closed    bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.published = append(c.published, publishedMessage{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeChannel) messages() []publishedMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]publishedMessage(nil), c.published...)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newFakePublisher(ch *fakeChannel, closed <-chan *amqp.Error) *AMQPPublisher {
	return &AMQPPublisher{
		exchange: "reports",
		logger:   quietLogger(),
		session:  &amqpSession{channel: ch, closed: closed},
	}
}

func generatedEvent(kind reporting.ReportKind, id string) application.ReportGenerated {
	return application.ReportGenerated{
		ReportKind:  kind,
		ReportID:    id,
		SubjectID:   "inf-1",
		SubjectKind: reporting.SubjectInfluencer,
		PeriodKind:  reporting.PeriodMonthly,
		PeriodStart: day(2025, 3, 1),
		PeriodEnd:   day(2025, 3, 31),
		OccurredAt:  time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestAMQPPublisherSendsPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	publisher := newFakePublisher(ch, nil)
	event := generatedEvent(reporting.KindStatement, "stmt-1")

	require.NoError(t, publisher.PublishReportGenerated(context.Background(), event))

	sent := ch.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "reports", sent[0].exchange)
	assert.Equal(t, "report.statement.generated", sent[0].key)
	assert.Equal(t, amqp.Persistent, sent[0].msg.DeliveryMode)
	assert.Equal(t, "application/json", sent[0].msg.ContentType)
	assert.Equal(t, "stmt-1", sent[0].msg.MessageId)
	assert.Equal(t, "statement", sent[0].msg.Type)
	assert.True(t, event.OccurredAt.Equal(sent[0].msg.Timestamp))

	var decoded application.ReportGenerated
	require.NoError(t, json.Unmarshal(sent[0].msg.Body, &decoded))
	assert.Equal(t, event.ReportID, decoded.ReportID)
	assert.Equal(t, event.SubjectID, decoded.SubjectID)
	assert.Equal(t, event.PeriodKind, decoded.PeriodKind)
}

func TestRoutingKeyPerReportKind(t *testing.T) {
	assert.Equal(t, "report.cash_flow.generated", RoutingKey(reporting.KindCashFlow))
	assert.Equal(t, "report.balance_sheet.generated", RoutingKey(reporting.KindBalanceSheet))
}

func TestAMQPPublisherWrapsChannelError(t *testing.T) {
	nack := errors.New("channel nack")
	ch := &fakeChannel{err: nack}
	publisher := newFakePublisher(ch, nil)

	err := publisher.PublishReportGenerated(context.Background(), generatedEvent(reporting.KindStatement, "stmt-2"))
	require.Error(t, err)
	assert.ErrorIs(t, err, nack)
	assert.Contains(t, err.Error(), "amqp publisher: publish")
	assert.False(t, ch.closed)
}

func TestAMQPPublisherNotConnected(t *testing.T) {
	event := generatedEvent(reporting.KindStatement, "stmt-3")

	var missing *AMQPPublisher
	assert.ErrorIs(t, missing.PublishReportGenerated(context.Background(), event), errAMQPNotConnected)
	assert.NoError(t, missing.Close())

	unconnected := &AMQPPublisher{exchange: "reports", logger: quietLogger()}
	assert.ErrorIs(t, unconnected.PublishReportGenerated(context.Background(), event), errAMQPNotConnected)

	ch := &fakeChannel{}
	closedPublisher := newFakePublisher(ch, nil)
	require.NoError(t, closedPublisher.Close())
	assert.True(t, ch.closed)
	assert.ErrorIs(t, closedPublisher.PublishReportGenerated(context.Background(), event), errAMQPNotConnected)
	assert.Empty(t, ch.messages())
}

func TestAMQPPublisherRedialsAfterChannelClose(t *testing.T) {
	dropped := make(chan *amqp.Error, 1)
	first := &fakeChannel{}
	second := &fakeChannel{}
	publisher := newFakePublisher(first, dropped)
	dials := 0
	publisher.dial = func() (*amqpSession, error) {
		dials++
		return &amqpSession{channel: second}, nil
	}
	ctx := context.Background()

	require.NoError(t, publisher.PublishReportGenerated(ctx, generatedEvent(reporting.KindStatement, "before")))
	assert.Zero(t, dials)

	dropped <- &amqp.Error{Code: amqp.ConnectionForced, Reason: "broker restart"}
	close(dropped)
	require.NoError(t, publisher.PublishReportGenerated(ctx, generatedEvent(reporting.KindStatement, "after")))

	assert.Equal(t, 1, dials)
	assert.True(t, first.closed)
	require.Len(t, first.messages(), 1)
	require.Len(t, second.messages(), 1)
	assert.Equal(t, "after", second.messages()[0].msg.MessageId)
}

func TestAMQPPublisherRedialsAfterClosedPublish(t *testing.T) {
	first := &fakeChannel{err: amqp.ErrClosed}
	second := &fakeChannel{}
	publisher := newFakePublisher(first, nil)
	publisher.dial = func() (*amqpSession, error) {
		return &amqpSession{channel: second}, nil
	}
	ctx := context.Background()

	err := publisher.PublishReportGenerated(ctx, generatedEvent(reporting.KindStatement, "lost"))
	assert.ErrorIs(t, err, amqp.ErrClosed)
	assert.True(t, first.closed)

	require.NoError(t, publisher.PublishReportGenerated(ctx, generatedEvent(reporting.KindStatement, "retried")))
	require.Len(t, second.messages(), 1)
	assert.Equal(t, "retried", second.messages()[0].msg.MessageId)
}

func TestAMQPPublisherRedialFailureIsReturned(t *testing.T) {
	dialErr := errors.New("connection refused")
	publisher := &AMQPPublisher{
		exchange: "reports",
		logger:   quietLogger(),
		dial:     func() (*amqpSession, error) { return nil, dialErr },
	}
	err := publisher.PublishReportGenerated(context.Background(), generatedEvent(reporting.KindStatement, "stmt-4"))
	assert.ErrorIs(t, err, dialErr)
}
