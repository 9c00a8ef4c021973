package rabbitmq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

func (c *connectionImpl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

func (c *connectionImpl) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil && !c.conn.IsClosed()
}

func (c *connectionImpl) Channel() (IChannel, error) {
	ch, err := c.channel()
	if err != nil {
		return nil, err
	}
	chImpl := &channelImpl{conn: c, ch: ch}
	chImpl.listenReconnect(c.notifyReconnect())
	return chImpl, nil
}

func (c *connectionImpl) channel() (*amqp.Channel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn == nil {
		return nil, ErrNotConnected
	}
	return c.conn.Channel()
}

func (c *connectionImpl) dial(connChan chan<- *amqp.Connection, cancel <-chan struct{}) {
	ctx := context.Background()
	for attempt := 1; ; attempt++ {
		select {
		case <-cancel:
			return
		default:
		}

		c.l.Infof(ctx, "pkg.rabbitmq.dial: connecting to RabbitMQ, attempt %d", attempt)
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.l.Warnf(ctx, "pkg.rabbitmq.dial: connection failed: %v", err)
			time.Sleep(RetryConnectionDelay)
			continue
		}

		select {
		case connChan <- conn:
		case <-cancel:
			_ = conn.Close()
		}
		return
	}
}

func (c *connectionImpl) connect() error {
	connChan := make(chan *amqp.Connection)
	cancel := make(chan struct{})
	go c.dial(connChan, cancel)

	var timeout <-chan time.Time
	if !c.retryWithoutTimeout {
		timeout = time.After(RetryConnectionTimeout)
	}

	select {
	case conn := <-connChan:
		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		c.listenClose(conn)
		return nil
	case <-timeout:
		close(cancel)
		return ErrConnectionTimeout
	}
}

// listenClose reconnects after the broker drops the connection and wakes
// every channel so it can re-open itself. A graceful Close yields a nil
// error and ends the loop.
func (c *connectionImpl) listenClose(conn *amqp.Connection) {
	notifyClose := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		err, ok := <-notifyClose
		if !ok || err == nil {
			return
		}
		ctx := context.Background()
		c.l.Warnf(ctx, "pkg.rabbitmq.listenClose: connection closed: %v", err)

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()

		if err := c.connect(); err != nil {
			c.l.Errorf(ctx, "pkg.rabbitmq.listenClose: reconnect failed: %v", err)
			return
		}

		c.mu.RLock()
		subs := append([]chan struct{}(nil), c.reconnects...)
		c.mu.RUnlock()
		for _, s := range subs {
			select {
			case s <- struct{}{}:
			default:
			}
		}
	}()
}

func (c *connectionImpl) notifyReconnect() <-chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.reconnects = append(c.reconnects, ch)
	c.mu.Unlock()
	return ch
}
