package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/FedererKK/citrex-go/constants"
	"github.com/FedererKK/citrex-go/message"
	"github.com/FedererKK/citrex-go/signing"
	"github.com/FedererKK/citrex-go/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/maxatome/go-testdeep/td"
	"github.com/shopspring/decimal"
)

func testSigner(t *testing.T) *signing.Signer {
	t.Helper()
	key, err := crypto.HexToECDSA("0123456789012345678901234567890123456789012345678901234567890123")
	td.Require(t).CmpNoError(err)
	id, err := signing.NewIdentity(key, 0, constants.SEI_TESTNET)
	td.Require(t).CmpNoError(err)
	return signing.NewSigner(id, signing.DefaultDomain(constants.SEI_TESTNET))
}

func sign(t *testing.T, s *signing.Signer, m message.Message) signing.Envelope {
	t.Helper()
	env, err := s.Sign(m)
	td.Require(t).CmpNoError(err)
	return env
}

// decode keeps integers as json.Number so e18 amounts stay exact.
func decode(t *testing.T, p Payload) map[string]any {
	t.Helper()
	body, err := json.Marshal(p)
	td.Require(t).CmpNoError(err)

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var out map[string]any
	td.Require(t).CmpNoError(dec.Decode(&out))
	return out
}

func TestEncodeCancelOrders(t *testing.T) {
	s := testSigner(t)
	env := sign(t, s, message.CancelOrders{
		SharedParams: message.SharedParams{
			Account:      s.Identity().Address(),
			SubAccountID: 3,
			Nonce:        42,
		},
		ProductID: 7,
	})

	p, err := Encode(env)
	td.Require(t).CmpNoError(err)

	td.Cmp(t, p.Keys(), []string{"account", "subAccountId", "productId", "nonce", "signature"})

	td.Cmp(t, decode(t, p), map[string]any{
		"account":      s.Identity().Address().Hex(),
		"subAccountId": json.Number("3"),
		"productId":    json.Number("7"),
		"nonce":        json.Number("42"),
		"signature":    env.Signature.Hex(),
	})
}

func TestEncodeIsDeterministic(t *testing.T) {
	s := testSigner(t)
	env := sign(t, s, message.Order{
		SharedParams: message.SharedParams{Account: s.Identity().Address(), Nonce: 9},
		ProductID:    1002,
		IsBuy:        true,
		OrderType:    types.LIMIT,
		TimeInForce:  types.IOC,
		Expiration:   1700000000,
		Price:        decimal.RequireFromString("2500.25"),
		Quantity:     decimal.RequireFromString("0.5"),
	})

	first, err := Encode(env)
	td.Require(t).CmpNoError(err)
	second, err := Encode(env)
	td.Require(t).CmpNoError(err)

	a, err := json.Marshal(first)
	td.Require(t).CmpNoError(err)
	b, err := json.Marshal(second)
	td.Require(t).CmpNoError(err)

	td.Cmp(t, string(a), string(b))
	td.Cmp(t, string(a), `{"account":"`+s.Identity().Address().Hex()+`",`+
		`"subAccountId":0,"productId":1002,"isBuy":true,"orderType":0,"timeInForce":2,`+
		`"expiration":1700000000,"price":2500250000000000000000,"quantity":500000000000000000,`+
		`"nonce":9,"signature":"`+env.Signature.Hex()+`"}`)

	body := decode(t, first)
	td.Cmp(t, body["price"], json.Number("2500250000000000000000"))
	td.Cmp(t, body["quantity"], json.Number("500000000000000000"))
}

func TestEncodeSharedOnlyMessage(t *testing.T) {
	s := testSigner(t)
	env := sign(t, s, message.Authentication{Account: s.Identity().Address(), Timestamp: 1})

	p, err := Encode(env)
	td.Require(t).CmpNoError(err)
	td.Cmp(t, p.Keys(), []string{"account", "timestamp", "signature"})

	account, ok := p.Get("account")
	td.CmpTrue(t, ok)
	td.Cmp(t, account, s.Identity().Address().Hex())

	_, ok = p.Get("productId")
	td.CmpFalse(t, ok)
}

func TestEncodeCancelAndReplace(t *testing.T) {
	s := testSigner(t)
	id := types.HexToOrderID("0x01")
	env := sign(t, s, message.CancelAndReplace{
		IDToCancel: id,
		NewOrder: message.Order{
			SharedParams: message.SharedParams{Account: s.Identity().Address(), Nonce: 1},
			ProductID:    1,
			Price:        decimal.NewFromInt(1),
			Quantity:     decimal.NewFromInt(1),
		},
	})

	p, err := Encode(env)
	td.Require(t).CmpNoError(err)
	td.Cmp(t, p.Keys(), []string{"idToCancel", "newOrder"})

	idToCancel, _ := p.Get("idToCancel")
	td.Cmp(t, idToCancel, id.Hex())

	inner, ok := p.Get("newOrder")
	td.Require(t).True(ok)
	td.Cmp(t, inner.(Payload).Keys(), td.Len(11))
	sig, _ := inner.(Payload).Get(SignatureKey)
	td.Cmp(t, sig, env.Signature.Hex())
}

func TestEncodeRejectsIncompleteEnvelopes(t *testing.T) {
	_, err := Encode(signing.Envelope{})
	td.CmpTrue(t, errors.Is(err, ErrEmptyEnvelope))

	_, err = Encode(signing.Envelope{
		Message: message.Authentication{Timestamp: 1},
	})
	td.CmpTrue(t, errors.Is(err, ErrUnsigned))
}

func TestPayloadSetKeepsFirstPosition(t *testing.T) {
	var p Payload
	p.set("a", 1)
	p.set("b", 2)
	p.set("a", 3)

	td.Cmp(t, p.Keys(), []string{"a", "b"})
	body, err := json.Marshal(p)
	td.Require(t).CmpNoError(err)
	td.Cmp(t, string(body), `{"a":3,"b":2}`)
}
