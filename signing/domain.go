package signing

import (
	"github.com/FedererKK/citrex-go/constants"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Domain is the EIP-712 domain, i.e. the signing scheme version a
// signature is bound to.
type Domain struct {
	Name              string
	Version           string
	ChainID           int64
	VerifyingContract common.Address
}

// DefaultDomain returns the venue domain for chain.
func DefaultDomain(chain constants.Chain) Domain {
	return Domain{
		Name:              constants.DOMAIN_NAME,
		Version:           constants.DOMAIN_VERSION,
		ChainID:           int64(chain),
		VerifyingContract: constants.ZERO_ADDRESS,
	}
}

func (d Domain) typed() apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              d.Name,
		Version:           d.Version,
		ChainId:           math.NewHexOrDecimal256(d.ChainID),
		VerifyingContract: d.VerifyingContract.Hex(),
	}
}
