// Package signing binds domain messages to an account with EIP-712
// typed-data signatures.
//
// A Signer validates a message against the schema of its kind before any
// key operation, hashes it under the venue domain and signs the digest.
// Signing is pure and synchronous; a Signer is safe for concurrent use.
package signing

import (
	"fmt"
	"strconv"
	"time"

	"github.com/FedererKK/citrex-go/constants"
	"github.com/FedererKK/citrex-go/errs"
	"github.com/FedererKK/citrex-go/message"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Envelope is a message with its signature. It lives for one request.
type Envelope struct {
	Message   message.Message
	Signature Signature
	Domain    Domain
}

type Signer struct {
	identity Identity
	domain   Domain
}

func NewSigner(identity Identity, domain Domain) *Signer {
	return &Signer{
		identity: identity,
		domain:   domain,
	}
}

func (s *Signer) Identity() Identity { return s.identity }

func (s *Signer) Domain() Domain { return s.domain }

// Sign validates msg and signs it. Validation failures and signing
// failures are returned as *errs.AuthenticationError.
func (s *Signer) Sign(msg message.Message) (Envelope, error) {
	if !s.identity.Valid() {
		return Envelope{}, &errs.AuthenticationError{Reason: "no signing key configured"}
	}

	if err := message.Validate(msg); err != nil {
		return Envelope{}, &errs.AuthenticationError{Reason: "malformed message", Err: err}
	}

	hash, err := Hash(msg, s.domain)
	if err != nil {
		return Envelope{}, &errs.AuthenticationError{Reason: "hash message", Err: err}
	}

	sig, err := s.signHash(hash)
	if err != nil {
		return Envelope{}, &errs.AuthenticationError{Reason: "sign message", Err: err}
	}

	return Envelope{
		Message:   msg,
		Signature: sig,
		Domain:    s.domain,
	}, nil
}

// AuthHeaders signs an Authentication message for ts and returns the
// headers attached to authenticated requests.
func (s *Signer) AuthHeaders(ts time.Time) (map[string]string, error) {
	timestamp := uint64(ts.UnixMilli())

	env, err := s.Sign(message.Authentication{
		Account:   s.identity.Address(),
		Timestamp: timestamp,
	})
	if err != nil {
		return nil, err
	}

	return map[string]string{
		constants.HEADER_ADDRESS:   s.identity.Address().Hex(),
		constants.HEADER_SIGNATURE: env.Signature.Hex(),
		constants.HEADER_TIMESTAMP: strconv.FormatUint(timestamp, 10),
	}, nil
}

// Hash returns the EIP-712 digest of msg under domain. msg must already be
// valid.
func Hash(msg message.Message, domain Domain) (common.Hash, error) {
	typedData, err := typedDataFor(msg, domain)
	if err != nil {
		return common.Hash{}, err
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Hash{}, fmt.Errorf(
			"failed generating hash for typed data: %w",
			err,
		)
	}

	return common.BytesToHash(hash), nil
}

// Recover returns the address that produced env's signature.
func Recover(env Envelope) (common.Address, error) {
	hash, err := Hash(env.Message, env.Domain)
	if err != nil {
		return common.Address{}, err
	}

	raw := env.Signature.Bytes()
	raw[64] -= 27

	pub, err := crypto.SigToPub(hash.Bytes(), raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}

func typedDataFor(msg message.Message, domain Domain) (apitypes.TypedData, error) {
	types, ok := message.Types(msg.PrimaryType())
	if !ok {
		return apitypes.TypedData{}, fmt.Errorf("unknown message type %q", msg.PrimaryType())
	}

	fields, err := msg.Fields()
	if err != nil {
		return apitypes.TypedData{}, err
	}

	typedMessage := make(apitypes.TypedDataMessage, len(fields))
	for _, f := range fields {
		typedMessage[f.Name] = message.TypedValue(f)
	}

	return apitypes.TypedData{
		Types:       types,
		PrimaryType: msg.PrimaryType(),
		Domain:      domain.typed(),
		Message:     typedMessage,
	}, nil
}

// signHash signs a hash using the private key and returns
// a signature
func (s *Signer) signHash(hash common.Hash) (Signature, error) {
	sig, err := crypto.Sign(hash.Bytes(), s.identity.privateKey)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to sign: %w", err)
	}

	return signatureFromBytes(sig)
}
