package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultQueueSize      = 256
	defaultDialTimeout    = 2 * time.Second
	defaultRetryDelay     = 5 * time.Second
	defaultPublishTimeout = 5 * time.Second
)

var (
	// ErrPublisherClosed возвращается после Close
	ErrPublisherClosed = errors.New("publisher closed")

	// ErrQueueFull возвращается, если очередь публикации переполнена; событие отброшено
	ErrQueueFull = errors.New("publish queue full")

	// ErrBrokerUnavailable событие отброшено, пока не истекла пауза после неудачного подключения
	ErrBrokerUnavailable = errors.New("broker unavailable")
)

// AMQPOption настраивает AMQPPublisher
type AMQPOption func(*AMQPPublisher)

// WithDialer подменяет функцию подключения к брокеру
func WithDialer(dial func(url string) (*amqp.Connection, error)) AMQPOption {
	return func(p *AMQPPublisher) { p.dial = dial }
}

// WithQueueSize задает емкость очереди публикации
func WithQueueSize(n int) AMQPOption {
	return func(p *AMQPPublisher) {
		if n > 0 {
			p.queueSize = n
		}
	}
}

// WithRetryDelay задает паузу между попытками подключения
func WithRetryDelay(d time.Duration) AMQPOption {
	return func(p *AMQPPublisher) { p.retryDelay = d }
}

// AMQPPublisher публикует события в topic exchange RabbitMQ.
// Publish только ставит событие в очередь; отправкой занимается фоновая
// горутина, поэтому недоступный брокер не задерживает HTTP запросы.
// Соединение открывается лениво и переоткрывается после разрыва.
type AMQPPublisher struct {
	retryAt    time.Time
	logger     *slog.Logger
	dial       func(url string) (*amqp.Connection, error)
	conn       *amqp.Connection
	ch         *amqp.Channel
	queue      chan Event
	done       chan struct{}
	url        string
	exchange   string
	queueSize  int
	retryDelay time.Duration
	mu         sync.RWMutex // защищает closed и отправку в queue
	closed     bool
}

// NewAMQPPublisher создает publisher и запускает горутину отправки.
// Подключение происходит при первом событии.
func NewAMQPPublisher(logger *slog.Logger, url, exchange string, opts ...AMQPOption) *AMQPPublisher {
	p := &AMQPPublisher{
		logger:     logger,
		url:        url,
		exchange:   exchange,
		queueSize:  defaultQueueSize,
		retryDelay: defaultRetryDelay,
		done:       make(chan struct{}),
	}
	p.dial = func(url string) (*amqp.Connection, error) {
		return amqp.DialConfig(url, amqp.Config{
			Heartbeat: 10 * time.Second,
			Locale:    "en_US",
			Dial:      amqp.DefaultDial(defaultDialTimeout),
		})
	}
	for _, opt := range opts {
		opt(p)
	}
	p.queue = make(chan Event, p.queueSize)

	go p.run()
	return p
}

// Publish ставит событие в очередь и не блокируется.
// При переполненной очереди событие отбрасывается с ErrQueueFull.
func (p *AMQPPublisher) Publish(_ context.Context, event Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *AMQPPublisher) run() {
	defer close(p.done)
	defer p.reset()

	for event := range p.queue {
		if err := p.send(event); err != nil {
			p.logger.Warn("failed to deliver event",
				slog.String("type", event.Type),
				slog.String("item_id", event.ItemID),
				slog.Any("error", err))
		}
	}
}

// send вызывается только из run
func (p *AMQPPublisher) send(event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.ensureChannel(); err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultPublishTimeout)
	defer cancel()

	if err := p.ch.PublishWithContext(ctx,
		p.exchange, // exchange
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		pub,
	); err != nil {
		// канал после ошибки непригоден, откроем заново при следующем событии
		p.reset()
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	return nil
}

func (p *AMQPPublisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()

	if time.Now().Before(p.retryAt) {
		return ErrBrokerUnavailable
	}

	conn, err := p.dial(p.url)
	if err != nil {
		p.retryAt = time.Now().Add(p.retryDelay)
		return fmt.Errorf("failed to dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		p.retryAt = time.Now().Add(p.retryDelay)
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // kind
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		p.retryAt = time.Now().Add(p.retryDelay)
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	p.logger.Info("amqp publisher connected", slog.String("exchange", p.exchange))
	p.conn = conn
	p.ch = ch
	return nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close перестает принимать события, дожидается отправки уже
// поставленных в очередь и закрывает соединение. Повторный вызов безопасен.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	<-p.done
	return nil
}
