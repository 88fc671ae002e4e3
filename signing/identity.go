package signing

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/FedererKK/citrex-go/constants"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Identity is the account a client acts for. It is immutable once built;
// the private key is never printed.
type Identity struct {
	address      common.Address
	subAccountID uint8
	chain        constants.Chain
	privateKey   *ecdsa.PrivateKey
}

// NewIdentity derives the account address from key.
func NewIdentity(
	key *ecdsa.PrivateKey,
	subAccountID uint8,
	chain constants.Chain,
) (Identity, error) {
	if key == nil {
		return Identity{}, fmt.Errorf("private key is required")
	}

	return Identity{
		address:      crypto.PubkeyToAddress(key.PublicKey),
		subAccountID: subAccountID,
		chain:        chain,
		privateKey:   key,
	}, nil
}

// ParsePrivateKey accepts a hex key with or without 0x prefix. The returned
// error never echoes the input.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	if len(hexKey) > 2 && (hexKey[:2] == "0x" || hexKey[:2] == "0X") {
		hexKey = hexKey[2:]
	}

	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key")
	}
	return key, nil
}

func (i Identity) Address() common.Address { return i.address }

func (i Identity) SubAccountID() uint8 { return i.subAccountID }

func (i Identity) Chain() constants.Chain { return i.chain }

// Valid reports whether the identity can sign.
func (i Identity) Valid() bool {
	return i.privateKey != nil && i.address != constants.ZERO_ADDRESS
}

func (i Identity) String() string {
	return fmt.Sprintf(
		"Identity{Address: %s, SubAccountID: %d, Chain: %s}",
		i.address.Hex(), i.subAccountID, i.chain,
	)
}

// GoString keeps %#v from dumping the key.
func (i Identity) GoString() string { return i.String() }
