package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/maxatome/go-testdeep/helpers/tdsuite"
	"github.com/maxatome/go-testdeep/td"
	"github.com/shopspring/decimal"
)

// ===== Suite wiring =====

type WSSuite struct{}

func TestWSSuite(t *testing.T) {
	tdsuite.Run(t, &WSSuite{})
}

// ===== Mock WebSocket Server =====

// mockWSServer simulates the Citrex stream server. It records every client
// request and lets the test push frames.
type mockWSServer struct {
	server   *httptest.Server
	url      string
	received chan request

	mu   sync.Mutex
	conn *websocket.Conn
	up   chan struct{}
}

func newMockWSServer(t testing.TB) *mockWSServer {
	s := &mockWSServer{
		received: make(chan request, 64),
		up:       make(chan struct{}),
	}

	s.server = httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, err := websocket.Accept(w, r, nil)
			if err != nil {
				t.Logf("websocket accept error: %v", err)
				return
			}
			defer conn.Close(websocket.StatusNormalClosure, "test complete")

			s.mu.Lock()
			s.conn = conn
			s.mu.Unlock()
			close(s.up)

			for {
				_, data, err := conn.Read(context.Background())
				if err != nil {
					return
				}

				var req request
				if err := json.Unmarshal(data, &req); err != nil {
					continue
				}

				if req.Method == "ping" {
					_ = conn.Write(
						context.Background(),
						websocket.MessageText,
						[]byte(`{"channel":"pong"}`),
					)
				}

				s.received <- req
			}
		}),
	)

	s.url = "ws" + strings.TrimPrefix(s.server.URL, "http")
	return s
}

func (s *mockWSServer) close() {
	s.server.Close()
}

// push sends a raw frame to the connected client.
func (s *mockWSServer) push(t *td.T, frame string) {
	select {
	case <-s.up:
	case <-time.After(time.Second):
		t.Fatal("client never connected")
	}

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	t.CmpNoError(conn.Write(context.Background(), websocket.MessageText, []byte(frame)))
}

// next returns the next client request other than a ping.
func (s *mockWSServer) next(t *td.T) request {
	for {
		select {
		case req := <-s.received:
			if req.Method == "ping" {
				continue
			}
			return req
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for client request")
			return request{}
		}
	}
}

func (s *mockWSServer) expectNone(t *td.T) {
	select {
	case req := <-s.received:
		if req.Method != "ping" {
			t.Errorf("unexpected client request %+v", req)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func activeCount(c *Client, identifier string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.activeSubscriptions[identifier])
}

func startClient(require *td.T, server *mockWSServer) *Client {
	client := New(Config{URL: server.url})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.CmpNoError(client.Start(ctx))
	return client
}

// ===== Topic Tests =====

func (s *WSSuite) TestSubscriptionIdentifiers(assert, require *td.T) {
	require.Parallel()

	tests := []struct {
		name       string
		sub        SubscriptionType
		expectedID string
	}{
		{"TradeHistory", TradeHistorySubscription{Symbol: "ETHPERP"}, "tradeHistory@ethperp"},
		{"Depth", DepthSubscription{Symbol: "btcperp"}, "depth@btcperp"},
		{"Ticker", TickerSubscription{Symbol: "SeiPerp"}, "ticker@seiperp"},
		{"Kline", KlineSubscription{Symbol: "ETHPERP", Interval: "1h"}, "kline@ethperp@1h"},
	}

	for _, tt := range tests {
		assert.Cmp(tt.sub.identifier(), tt.expectedID, tt.name)
	}

	channel, identifier := normalizeTopic("kline@ETHPERP@1h")
	assert.Cmp(channel, "kline")
	assert.Cmp(identifier, "kline@ethperp@1h")

	channel, identifier = normalizeTopic("pong")
	assert.Cmp(channel, "pong")
	assert.Cmp(identifier, "pong")
}

// ===== Client Lifecycle Tests =====

func (s *WSSuite) TestClientStartClose(assert, require *td.T) {
	t := require.TB
	require.Parallel()

	server := newMockWSServer(t)
	defer server.close()

	client := startClient(require, server)

	err := client.Start(context.Background())
	assert.Cmp(err, ErrAlreadyStarted)

	client.Close()
	client.Close()

	err = client.Start(context.Background())
	assert.Cmp(err, ErrClosed)

	_, err = client.SubscribeDepth(context.Background(), "ethperp", make(chan DepthMessage))
	assert.Cmp(err, ErrClosed)
}

func (s *WSSuite) TestStartUnreachable(assert, require *td.T) {
	require.Parallel()

	client := New(Config{URL: "ws://127.0.0.1:1/ws"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.CmpError(client.Start(ctx))
}

// ===== Subscription Tests =====

func (s *WSSuite) TestQueuedSubscriptionSentOnStart(assert, require *td.T) {
	t := require.TB
	require.Parallel()

	server := newMockWSServer(t)
	defer server.close()

	client := New(Config{URL: server.url})
	defer client.Close()

	sub, err := client.SubscribeDepth(context.Background(), "ETHPERP", make(chan DepthMessage))
	require.CmpNoError(err)
	defer sub.Unsubscribe()

	require.Cmp(activeCount(client, "depth@ethperp"), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.CmpNoError(client.Start(ctx))

	assert.Cmp(server.next(require), request{
		Method: "subscribe",
		Params: []string{"depth@ethperp"},
	})
}

func (s *WSSuite) TestSubscribeOncePerTopic(assert, require *td.T) {
	t := require.TB
	require.Parallel()

	server := newMockWSServer(t)
	defer server.close()

	client := startClient(require, server)
	defer client.Close()

	sub1, err := client.SubscribeTicker(context.Background(), "ethperp", make(chan TickerMessage))
	require.CmpNoError(err)
	assert.Cmp(server.next(require), request{Method: "subscribe", Params: []string{"ticker@ethperp"}})

	sub2, err := client.SubscribeTicker(context.Background(), "ETHPERP", make(chan TickerMessage))
	require.CmpNoError(err)
	server.expectNone(require)

	require.Cmp(activeCount(client, "ticker@ethperp"), 2)

	// the first unsubscribe keeps the topic alive
	sub1.Unsubscribe()
	server.expectNone(require)

	sub2.Unsubscribe()
	assert.Cmp(server.next(require), request{Method: "unsubscribe", Params: []string{"ticker@ethperp"}})
	assert.Cmp(activeCount(client, "ticker@ethperp"), 0)
}

func (s *WSSuite) TestContextCancelEndsSubscription(assert, require *td.T) {
	t := require.TB
	require.Parallel()

	server := newMockWSServer(t)
	defer server.close()

	client := startClient(require, server)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := client.SubscribeKline(ctx, "btcperp", "1m", make(chan KlineMessage))
	require.CmpNoError(err)
	assert.Cmp(server.next(require).Method, "subscribe")

	cancel()

	select {
	case err := <-sub.Err():
		assert.Cmp(err, context.Canceled)
	case <-time.After(time.Second):
		require.Fatal("timeout waiting for subscription end")
	}

	assert.Cmp(server.next(require), request{Method: "unsubscribe", Params: []string{"kline@btcperp@1m"}})

	// Err is closed once drained
	_, open := <-sub.Err()
	assert.False(open)

	// Unsubscribe after the end is a no-op
	sub.Unsubscribe()
}

// ===== Message Routing Tests =====

func (s *WSSuite) TestDepthMessageRouting(assert, require *td.T) {
	t := require.TB
	require.Parallel()

	server := newMockWSServer(t)
	defer server.close()

	client := startClient(require, server)
	defer client.Close()

	msgChan := make(chan DepthMessage)
	sub, err := client.SubscribeDepth(context.Background(), "ethperp", msgChan)
	require.CmpNoError(err)
	defer sub.Unsubscribe()
	server.next(require)

	server.push(require, `{
		"channel":"depth@ETHPERP",
		"data":{
			"symbol":"ethperp",
			"bids":[["2499000000000000000000","1000000000000000000"]],
			"asks":[["2501000000000000000000","2000000000000000000"]],
			"timestamp":1733097600000
		}
	}`)

	select {
	case received := <-msgChan:
		assert.Cmp(received.Topic, "depth@ethperp")
		assert.Cmp(received.Timestamp, int64(1733097600000))
		require.Len(received.Bids, 1)
		assert.True(received.Bids[0][0].Equal(decimal.NewFromInt(2499)))
		assert.True(received.Asks[0][1].Equal(decimal.NewFromInt(2)))
	case <-time.After(time.Second):
		require.Fatal("timeout waiting for message")
	}
}

func (s *WSSuite) TestTradeHistoryRoutingFansOut(assert, require *td.T) {
	t := require.TB
	require.Parallel()

	server := newMockWSServer(t)
	defer server.close()

	client := startClient(require, server)
	defer client.Close()

	chans := []chan TradesMessage{make(chan TradesMessage, 1), make(chan TradesMessage, 1)}
	for _, ch := range chans {
		sub, err := client.SubscribeTradeHistory(context.Background(), "btcperp", ch)
		require.CmpNoError(err)
		defer sub.Unsubscribe()
	}
	server.next(require)

	// no subscriber for ethperp: dropped
	server.push(require, `{"channel":"tradeHistory@ethperp","data":[{"id":"t0"}]}`)
	server.push(require, `{"channel":"tradeHistory@btcperp","data":[
		{"id":"t1","productId":1001,"price":"60000000000000000000000","quantity":"10000000000000000","isBuyerMaker":true,"timestamp":1},
		{"id":"t2","productId":1001,"price":"60001000000000000000000","quantity":"20000000000000000","timestamp":2}
	]}`)

	for _, ch := range chans {
		select {
		case received := <-ch:
			assert.Cmp(received.Topic, "tradeHistory@btcperp")
			require.Len(received.Trades, 2)
			assert.Cmp(received.Trades[0].ID, "t1")
			assert.True(received.Trades[0].IsBuyerMaker)
			assert.True(received.Trades[1].Quantity.Equal(decimal.RequireFromString("0.02")))
		case <-time.After(time.Second):
			require.Fatal("timeout waiting for trades")
		}
	}
}

func (s *WSSuite) TestMalformedFramesAreDropped(assert, require *td.T) {
	require.Parallel()

	client := New(Config{URL: "ws://unused"})

	msgChan := make(chan TickerMessage, 1)
	sub, err := client.SubscribeTicker(context.Background(), "ethperp", msgChan)
	require.CmpNoError(err)
	defer sub.Unsubscribe()

	for _, frame := range []string{
		`not json`,
		`{"data":{}}`,
		`{"channel":"ticker@ethperp"}`,
		`{"channel":"ticker@ethperp","data":null}`,
		`{"channel":"ticker@ethperp","data":"oops"}`,
		`{"channel":"funding@ethperp","data":{}}`,
		`{"channel":"pong"}`,
	} {
		client.handleMessage([]byte(frame))
	}

	select {
	case msg := <-msgChan:
		require.Fatalf("unexpected message %+v", msg)
	default:
	}

	client.handleMessage([]byte(`{"channel":"ticker@ethperp","data":{"productId":1002,"lastPrice":"2500000000000000000000"}}`))

	select {
	case msg := <-msgChan:
		assert.Cmp(msg.ProductID, uint32(1002))
		assert.True(msg.LastPrice.Equal(decimal.NewFromInt(2500)))
	default:
		require.Fatal("expected a ticker message")
	}
}

// ===== Keepalive =====

func (s *WSSuite) TestPing(assert, require *td.T) {
	t := require.TB
	require.Parallel()

	server := newMockWSServer(t)
	defer server.close()

	client := New(Config{URL: server.url})
	client.pingInterval = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.CmpNoError(client.Start(ctx))
	defer client.Close()

	select {
	case req := <-server.received:
		assert.Cmp(req, request{Method: "ping"})
	case <-time.After(time.Second):
		require.Fatal("timeout waiting for ping")
	}
}
