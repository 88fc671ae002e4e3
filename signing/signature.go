package signing

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const signatureLength = 65

// Signature is a secp256k1 signature with Ethereum-canonical V (27 or 28).
type Signature struct {
	R common.Hash
	S common.Hash
	V byte
}

// Bytes returns R || S || V.
func (s Signature) Bytes() []byte {
	out := make([]byte, 0, signatureLength)
	out = append(out, s.R[:]...)
	out = append(out, s.S[:]...)
	return append(out, s.V)
}

// Hex returns the 0x-prefixed 65 byte form sent to the venue.
func (s Signature) Hex() string {
	return hexutil.Encode(s.Bytes())
}

func (s Signature) IsZero() bool {
	return s == Signature{}
}

// MarshalJSON encodes the signature as "0x<r><s><v>".
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Hex())
}

// UnmarshalJSON decodes from "0x<r><s><v>".
func (s *Signature) UnmarshalJSON(data []byte) error {
	var h string
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}

	raw, err := hexutil.Decode(h)
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}

	sig, err := signatureFromBytes(raw)
	if err != nil {
		return err
	}
	*s = sig

	return nil
}

func (s Signature) String() string {
	return fmt.Sprintf(
		"R: %s, S: %s, V: %d",
		hexutil.Encode(s.R[:]),
		hexutil.Encode(s.S[:]),
		s.V,
	)
}

func signatureFromBytes(sig []byte) (Signature, error) {
	var out Signature

	if len(sig) != signatureLength {
		return out, fmt.Errorf(
			"invalid signature length: got %d, want %d",
			len(sig),
			signatureLength,
		)
	}

	// sig = [R || S || V]
	copy(out.R[:], sig[:32])
	copy(out.S[:], sig[32:64])
	v := sig[64]

	// Ethereum canonical V = 27 or 28
	if v < 27 {
		v += 27
	}

	out.V = v

	return out, nil
}
