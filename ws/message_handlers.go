package ws

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// handleMessage decodes a pushed frame and routes it to the subscribers of
// its topic. Malformed frames are logged and dropped.
func (m *Client) handleMessage(data []byte) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		m.logger.Warn("failed to unmarshal ws message", zap.Error(err))
		return
	}

	if f.Channel == "" {
		m.logger.Debug("websocket message missing channel field")
		return
	}

	if f.Channel == channelPong {
		m.logger.Debug("websocket received pong")
		return
	}

	if len(f.Data) == 0 || string(f.Data) == "null" {
		m.logger.Debug("websocket message missing data field",
			zap.String("channel", f.Channel),
		)
		return
	}

	channel, identifier := normalizeTopic(f.Channel)

	msg, err := decodeMessage(channel, identifier, f.Data)
	if err != nil {
		m.logger.Warn("failed to decode ws message",
			zap.String("channel", f.Channel),
			zap.Error(err),
		)
		return
	}

	m.route(identifier, msg)
}

func decodeMessage(channel string, identifier string, data json.RawMessage) (any, error) {
	switch channel {
	case channelTradeHistory:
		var trades []Trade
		if err := json.Unmarshal(data, &trades); err != nil {
			return nil, err
		}
		return TradesMessage{Topic: identifier, Trades: trades}, nil

	case channelDepth:
		var msg DepthMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, err
		}
		msg.Topic = identifier
		return msg, nil

	case channelTicker:
		var msg TickerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, err
		}
		msg.Topic = identifier
		return msg, nil

	case channelKline:
		var msg KlineMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, err
		}
		msg.Topic = identifier
		return msg, nil
	}

	return nil, fmt.Errorf("unknown channel %q", channel)
}
