package constants

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain identifies the EVM chain the venue settles on. The value is the
// chain id used in the EIP-712 domain.
type Chain int64

const (
	SEI         Chain = 1329
	SEI_TESTNET Chain = 1328
)

func (c Chain) String() string {
	switch c {
	case SEI:
		return "sei"
	case SEI_TESTNET:
		return "sei-testnet"
	}
	return fmt.Sprintf("chain(%d)", int64(c))
}

// ParseChain accepts the names produced by Chain.String.
func ParseChain(s string) (Chain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sei":
		return SEI, nil
	case "sei-testnet", "sei_testnet":
		return SEI_TESTNET, nil
	}
	return 0, fmt.Errorf("unsupported chain %q", s)
}

type Environment string

const (
	PROD Environment = "prod"
	TEST Environment = "test"
)

// ParseEnvironment maps "prod"/"test" (case-insensitive) to an Environment.
// An empty string selects PROD.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case "", PROD:
		return PROD, nil
	case TEST:
		return TEST, nil
	}
	return "", fmt.Errorf("unsupported environment %q", s)
}

const PROD_API_URL = "https://api.citrex.markets"
const TEST_API_URL = "https://api.staging.citrex.markets"
const PROD_WS_URL = "wss://api.citrex.markets/v1/ws/operate"
const TEST_WS_URL = "wss://api.staging.citrex.markets/v1/ws/operate"
const LOCAL_API_URL = "http://localhost:3001"

// APIURL returns the REST base URL for env.
func APIURL(env Environment) string {
	if env == TEST {
		return TEST_API_URL
	}
	return PROD_API_URL
}

// WSURL returns the stream URL for env.
func WSURL(env Environment) string {
	if env == TEST {
		return TEST_WS_URL
	}
	return PROD_WS_URL
}

// Authentication header names. The venue compares them verbatim.
const (
	HEADER_ADDRESS    = "X-Citrex-Address"
	HEADER_SIGNATURE  = "X-Citrex-Signature"
	HEADER_TIMESTAMP  = "X-Citrex-Timestamp"
	HEADER_REQUEST_ID = "X-Request-Id"
)

// EIP-712 domain defaults.
const (
	DOMAIN_NAME    = "ciao"
	DOMAIN_VERSION = "0.0.0"
)

const DEFAULT_TIMEOUT = 30 * time.Second

// DEFAULT_ORDER_TTL is how far in the future an order expires when no
// explicit expiration is given.
const DEFAULT_ORDER_TTL = 30 * 24 * time.Hour

var ZERO_ADDRESS = common.Address{}
