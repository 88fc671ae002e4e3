package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/FedererKK/citrex-go/codec"
	"github.com/FedererKK/citrex-go/constants"
	"github.com/FedererKK/citrex-go/endpoints"
	"github.com/FedererKK/citrex-go/errs"
	"github.com/FedererKK/citrex-go/message"
	"github.com/FedererKK/citrex-go/rest"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request is one call through the executor.
type Request struct {
	// Endpoint is the registered path, e.g. "/v1/openOrders".
	Endpoint string
	Method   string
	// Message is signed and sent as the JSON body. nil sends no body.
	Message message.Message
	// Params are sent as the query string. The map is copied.
	Params        map[string]string
	Authenticated bool
}

// Send validates, signs, encodes and dispatches req, then decodes a 200
// response into T. Exactly one HTTP request is made, or none when the
// request is rejected locally.
func Send[T any](ctx context.Context, e *Exchange, req Request) (T, error) {
	var result T

	resp, err := e.dispatch(ctx, req)
	if err != nil {
		return result, err
	}

	return rest.Decode[T](resp)
}

// SendMessageToEndpoint is Send with an untyped JSON object result.
func (e *Exchange) SendMessageToEndpoint(
	ctx context.Context,
	req Request,
) (map[string]any, error) {
	return Send[map[string]any](ctx, e, req)
}

func (e *Exchange) dispatch(ctx context.Context, req Request) (*rest.Response, error) {
	desc, ok := endpoints.Lookup(req.Endpoint, req.Method)
	if !ok {
		return nil, &errs.InvalidEndpointError{
			Endpoint: req.Endpoint,
			Method:   req.Method,
		}
	}

	if desc.RequiresAuth && !req.Authenticated {
		return nil, &errs.AuthenticationError{
			Reason: fmt.Sprintf("%s requires authentication", desc.Name),
		}
	}

	var body []byte
	headers := make(map[string]string, 4)

	if req.Authenticated || req.Message != nil {
		signer, ok := e.signer.Get()
		if !ok {
			return nil, errNoIdentity()
		}

		if req.Message != nil {
			env, err := signer.Sign(req.Message)
			if err != nil {
				return nil, err
			}

			payload, err := codec.Encode(env)
			if err != nil {
				return nil, &errs.AuthenticationError{Reason: "encode message", Err: err}
			}

			body, err = json.Marshal(payload)
			if err != nil {
				return nil, &errs.AuthenticationError{Reason: "encode message", Err: err}
			}
		}

		if req.Authenticated {
			auth, err := signer.AuthHeaders(e.now())
			if err != nil {
				return nil, err
			}
			maps.Copy(headers, auth)
		}
	}

	requestID := uuid.NewString()
	headers[constants.HEADER_REQUEST_ID] = requestID

	log := e.logger.With(
		zap.String("endpoint", desc.Name),
		zap.String("method", desc.Method),
		zap.String("requestId", requestID),
	)
	log.Debug("dispatching request",
		zap.Bool("authenticated", req.Authenticated),
		zap.Int("payloadSize", len(body)),
	)

	resp, err := e.rest.Do(ctx, &rest.Request{
		Method:  desc.Method,
		Path:    desc.Path,
		Query:   maps.Clone(req.Params),
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		log.Warn("request failed",
			zap.Stringer("kind", errs.KindOf(err)),
			zap.Error(err),
		)
		return nil, err
	}

	log.Debug("request succeeded", zap.Int("status", resp.StatusCode))

	return resp, nil
}
