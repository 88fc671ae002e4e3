// Package codec turns a signed envelope into the JSON body the venue
// expects: the message fields in schema order followed by the signature.
package codec

import (
	"errors"
	"fmt"

	"github.com/FedererKK/citrex-go/message"
	"github.com/FedererKK/citrex-go/signing"
	"github.com/ethereum/go-ethereum/common"
)

const SignatureKey = "signature"

var (
	ErrEmptyEnvelope = errors.New("envelope has no message")
	ErrUnsigned      = errors.New("envelope is not signed")
	ErrEmptyPayload  = errors.New("message produced no fields")
)

// Encode flattens env. The output depends only on env.
func Encode(env signing.Envelope) (Payload, error) {
	if env.Message == nil {
		return Payload{}, ErrEmptyEnvelope
	}
	if env.Signature.IsZero() {
		return Payload{}, ErrUnsigned
	}

	fields, err := env.Message.Fields()
	if err != nil {
		return Payload{}, fmt.Errorf("encode %s: %w", env.Message.Kind(), err)
	}
	if len(fields) == 0 {
		return Payload{}, fmt.Errorf("encode %s: %w", env.Message.Kind(), ErrEmptyPayload)
	}

	var p Payload
	for _, f := range fields {
		p.set(f.Name, wireValue(f.Value))
	}
	p.set(SignatureKey, env.Signature.Hex())

	if m, ok := env.Message.(message.CancelAndReplace); ok {
		var outer Payload
		outer.set("idToCancel", m.IDToCancel.Hex())
		outer.set("newOrder", p)
		return outer, nil
	}

	return p, nil
}

func wireValue(v any) any {
	switch v := v.(type) {
	case common.Address:
		return v.Hex()
	case common.Hash:
		return v.Hex()
	}
	return v
}
