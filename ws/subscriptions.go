package ws

import (
	"context"
	"errors"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// Subscription is a live stream subscription.
type Subscription interface {
	// Unsubscribe stops delivery. It is safe to call more than once.
	Unsubscribe()
	// Err yields the reason the subscription ended, then is closed.
	Err() <-chan error
}

type subscription struct {
	cancel  context.CancelFunc
	errChan chan error
}

func (s *subscription) Unsubscribe()      { s.cancel() }
func (s *subscription) Err() <-chan error { return s.errChan }

// channelSubscription is one subscriber of a topic.
type channelSubscription struct {
	id      int64
	deliver func(msg any)
	done    chan struct{}
}

// ===== Type-safe subscription methods =====

// SubscribeTradeHistory streams the trades of symbol, e.g. "ethperp"
func (m *Client) SubscribeTradeHistory(
	ctx context.Context,
	symbol string,
	ch chan<- TradesMessage,
) (Subscription, error) {
	return newWSSubscription(ctx, m, TradeHistorySubscription{Symbol: symbol}, ch)
}

// SubscribeDepth streams order book snapshots of symbol
func (m *Client) SubscribeDepth(
	ctx context.Context,
	symbol string,
	ch chan<- DepthMessage,
) (Subscription, error) {
	return newWSSubscription(ctx, m, DepthSubscription{Symbol: symbol}, ch)
}

// SubscribeTicker streams 24h statistics of symbol
func (m *Client) SubscribeTicker(
	ctx context.Context,
	symbol string,
	ch chan<- TickerMessage,
) (Subscription, error) {
	return newWSSubscription(ctx, m, TickerSubscription{Symbol: symbol}, ch)
}

// SubscribeKline streams candles of symbol for interval, e.g. "1m"
func (m *Client) SubscribeKline(
	ctx context.Context,
	symbol string,
	interval string,
	ch chan<- KlineMessage,
) (Subscription, error) {
	return newWSSubscription(
		ctx,
		m,
		KlineSubscription{Symbol: symbol, Interval: interval},
		ch,
	)
}

// newWSSubscription registers ch for sub and ties the subscription's
// lifetime to ctx.
func newWSSubscription[T any](
	ctx context.Context,
	m *Client,
	sub SubscriptionType,
	ch chan<- T,
) (Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)

	errChan := make(chan error, 1)
	id := m.nextSubscriptionID()

	if err := subscribe(m, sub, ch, id); err != nil {
		cancel()
		close(errChan)
		return nil, err
	}

	go func() {
		<-subCtx.Done()

		select {
		case errChan <- subCtx.Err():
		default:
		}
		close(errChan)

		m.unsubscribe(sub, id)
	}()

	return &subscription{
		cancel:  cancel,
		errChan: errChan,
	}, nil
}

// nextSubscriptionID increments and returns a unique subscription ID.
func (m *Client) nextSubscriptionID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptionIDCounter++
	return m.subscriptionIDCounter
}

func subscribe[T any](
	m *Client,
	sub SubscriptionType,
	ch chan<- T,
	id int64,
) error {
	identifier := sub.identifier()

	cs := &channelSubscription{
		id:   id,
		done: make(chan struct{}),
	}
	cs.deliver = func(msg any) {
		v, ok := msg.(T)
		if !ok {
			return
		}
		select {
		case ch <- v:
		case <-cs.done:
		case <-m.stopChan:
		}
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	first := len(m.activeSubscriptions[identifier]) == 0
	m.activeSubscriptions[identifier] = append(m.activeSubscriptions[identifier], cs)
	conn := m.conn
	m.mu.Unlock()

	if conn == nil {
		m.logger.Debug("enqueueing subscription", zap.String("topic", identifier))
		return nil
	}
	if !first {
		return nil
	}

	if err := m.send(conn, "subscribe", identifier); err != nil {
		m.removeSubscription(identifier, id)
		return err
	}

	m.logger.Debug("subscribed", zap.String("topic", identifier))
	return nil
}

// unsubscribe removes subscriber id and tells the server when it was the
// last subscriber of the topic.
func (m *Client) unsubscribe(sub SubscriptionType, id int64) bool {
	identifier := sub.identifier()

	removed, remaining := m.removeSubscription(identifier, id)
	if !removed || remaining > 0 {
		return removed
	}

	m.mu.RLock()
	conn, closed := m.conn, m.closed
	m.mu.RUnlock()

	if conn == nil || closed {
		return removed
	}

	if err := m.send(conn, "unsubscribe", identifier); err != nil &&
		!errors.Is(err, context.Canceled) &&
		websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		m.logger.Warn("error sending unsubscribe message",
			zap.String("topic", identifier),
			zap.Error(err),
		)
	}

	return removed
}

func (m *Client) removeSubscription(identifier string, id int64) (removed bool, remaining int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.activeSubscriptions[identifier]
	kept := make([]*channelSubscription, 0, len(active))
	for _, s := range active {
		if s.id == id {
			close(s.done)
			removed = true
			continue
		}
		kept = append(kept, s)
	}

	if len(kept) == 0 {
		delete(m.activeSubscriptions, identifier)
	} else {
		m.activeSubscriptions[identifier] = kept
	}

	return removed, len(kept)
}

// route delivers msg to every subscriber of identifier.
func (m *Client) route(identifier string, msg any) {
	m.mu.RLock()
	subs := append([]*channelSubscription(nil), m.activeSubscriptions[identifier]...)
	m.mu.RUnlock()

	if len(subs) == 0 {
		m.logger.Debug("websocket message from unexpected subscription",
			zap.String("topic", identifier),
		)
		return
	}

	for _, s := range subs {
		s.deliver(msg)
	}
}
