package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"creator-finance/internal/reporting/application"
	reporting "creator-finance/internal/reporting/domain"
)

const (
	amqpDialAttempts = 5
	amqpRetryDelay   = 2 * time.Second
)

var errAMQPNotConnected = errors.New("amqp publisher: not connected")

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// amqpSession is one connection and channel pair. closed fires when the broker drops the channel.
type amqpSession struct {
	conn    io.Closer
	channel amqpChannel
	closed  <-chan *amqp.Error
}

func (s *amqpSession) alive() bool {
	if s.closed == nil {
		return true
	}
	select {
	case <-s.closed:
		return false
	default:
		return true
	}
}

func (s *amqpSession) close() error {
	var errs []error
	if s.channel != nil {
		errs = append(errs, s.channel.Close())
	}
	if s.conn != nil {
		errs = append(errs, s.conn.Close())
	}
	return errors.Join(errs...)
}

// AMQPPublisher publishes report generated events to a topic exchange.
// A dropped channel is replaced by a fresh session on the next publish.
type AMQPPublisher struct {
	exchange string
	logger   logrus.FieldLogger
	dial     func() (*amqpSession, error)

	mu      sync.Mutex
	session *amqpSession
}

// DialAMQPPublisher connects to the broker, retrying a few times, and declares exchange.
func DialAMQPPublisher(url, exchange string, logger logrus.FieldLogger) (*AMQPPublisher, error) {
	if url == "" {
		return nil, errors.New("amqp publisher: empty url")
	}
	if exchange == "" {
		return nil, errors.New("amqp publisher: empty exchange")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	p := &AMQPPublisher{
		exchange: exchange,
		logger:   logger,
		dial:     func() (*amqpSession, error) { return openAMQPSession(url, exchange) },
	}

	var (
		session *amqpSession
		err     error
	)
	for attempt := 1; attempt <= amqpDialAttempts; attempt++ {
		session, err = p.dial()
		if err == nil {
			break
		}
		logger.WithError(err).WithField("attempt", attempt).Warn("amqp dial failed")
		if attempt < amqpDialAttempts {
			time.Sleep(amqpRetryDelay)
		}
	}
	if err != nil {
		return nil, err
	}
	p.session = session
	logger.WithField("exchange", exchange).Info("amqp publisher ready")
	return p, nil
}

func openAMQPSession(url, exchange string) (*amqpSession, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp publisher: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp publisher: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp publisher: declare exchange: %w", err)
	}
	return &amqpSession{
		conn:    conn,
		channel: ch,
		closed:  ch.NotifyClose(make(chan *amqp.Error, 1)),
	}, nil
}

// RoutingKey returns the routing key of events of kind.
func RoutingKey(kind reporting.ReportKind) string {
	return "report." + string(kind) + ".generated"
}

// PublishReportGenerated sends the event as a persistent JSON message.
func (p *AMQPPublisher) PublishReportGenerated(ctx context.Context, event application.ReportGenerated) error {
	if p == nil {
		return errAMQPNotConnected
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("amqp publisher: marshal: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ReportID,
		Timestamp:    event.OccurredAt,
		Type:         string(event.ReportKind),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	session, err := p.liveSession()
	if err != nil {
		return err
	}
	if err := session.channel.PublishWithContext(ctx, p.exchange, RoutingKey(event.ReportKind), false, false, msg); err != nil {
		if errors.Is(err, amqp.ErrClosed) {
			p.dropSession()
		}
		return fmt.Errorf("amqp publisher: publish: %w", err)
	}
	return nil
}

// liveSession returns the current session, redialling once when the channel was dropped.
// Callers hold p.mu.
func (p *AMQPPublisher) liveSession() (*amqpSession, error) {
	if p.session != nil && p.session.alive() {
		return p.session, nil
	}
	if p.session != nil {
		p.logger.WithField("exchange", p.exchange).Warn("amqp channel closed, reconnecting")
		p.dropSession()
	}
	if p.dial == nil {
		return nil, errAMQPNotConnected
	}
	session, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.session = session
	return session, nil
}

func (p *AMQPPublisher) dropSession() {
	if p.session == nil {
		return
	}
	if err := p.session.close(); err != nil {
		p.logger.WithError(err).Debug("amqp session close")
	}
	p.session = nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dial = nil
	if p.session == nil {
		return nil
	}
	err := p.session.close()
	p.session = nil
	return err
}
