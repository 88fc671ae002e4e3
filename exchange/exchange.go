package exchange

import (
	"crypto/ecdsa"
	"fmt"
	"strconv"
	"time"

	"github.com/FedererKK/citrex-go/constants"
	"github.com/FedererKK/citrex-go/errs"
	"github.com/FedererKK/citrex-go/info"
	"github.com/FedererKK/citrex-go/message"
	"github.com/FedererKK/citrex-go/rest"
	"github.com/FedererKK/citrex-go/signing"
	"github.com/FedererKK/citrex-go/ws"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

// Config for initializing the Exchange client
type Config struct {
	// Chain defaults to SEI.
	Chain constants.Chain
	// Environment defaults to PROD.
	Environment constants.Environment
	// PrivateKey is optional. Without it only public reads are possible.
	PrivateKey   *ecdsa.PrivateKey
	SubAccountID uint8
	// BaseURL and WSURL override the environment's URLs.
	BaseURL string
	WSURL   string
	Timeout time.Duration
	Logger  *zap.Logger
	// Transport replaces the REST client built from BaseURL and Timeout.
	Transport rest.ClientInterface
	// VerifyingContract overrides the EIP-712 domain's verifying contract.
	VerifyingContract common.Address
}

// Exchange provides access to account and trading operations via REST API
type Exchange struct {
	rest         rest.ClientInterface
	info         *info.Info
	signer       mo.Option[*signing.Signer]
	chain        constants.Chain
	subAccountID uint8
	wsURL        string
	nonces       *message.NonceSource
	logger       *zap.Logger
	now          func() time.Time
}

// New creates a new Exchange client
func New(cfg Config) (*Exchange, error) {
	chain := cfg.Chain
	if chain == 0 {
		chain = constants.SEI
	}

	env := cfg.Environment
	if env == "" {
		env = constants.PROD
	}
	if env != constants.PROD && env != constants.TEST {
		return nil, fmt.Errorf("unsupported environment %q", env)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Create REST client
	restClient := cfg.Transport
	if restClient == nil {
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = constants.APIURL(env)
		}
		restClient = rest.New(rest.Config{
			BaseUrl: baseURL,
			Timeout: cfg.Timeout,
		})
	}

	wsURL := cfg.WSURL
	if wsURL == "" {
		wsURL = constants.WSURL(env)
	}

	var signer mo.Option[*signing.Signer]
	if cfg.PrivateKey != nil {
		identity, err := signing.NewIdentity(cfg.PrivateKey, cfg.SubAccountID, chain)
		if err != nil {
			return nil, fmt.Errorf("failed to create identity: %w", err)
		}

		domain := signing.DefaultDomain(chain)
		if cfg.VerifyingContract != constants.ZERO_ADDRESS {
			domain.VerifyingContract = cfg.VerifyingContract
		}

		signer = mo.Some(signing.NewSigner(identity, domain))
	}

	e := &Exchange{
		rest: restClient,
		info: info.New(info.Config{
			Transport: restClient,
			Logger:    logger,
		}),
		signer:       signer,
		chain:        chain,
		subAccountID: cfg.SubAccountID,
		wsURL:        wsURL,
		nonces:       message.NewNonceSource(),
		logger:       logger,
		now:          time.Now,
	}

	logger.Debug("exchange client created",
		zap.Stringer("chain", chain),
		zap.String("environment", string(env)),
		zap.String("baseUrl", restClient.BaseUrl()),
		zap.Bool("authenticated", signer.IsPresent()),
	)

	return e, nil
}

// Info returns the public read client sharing this client's transport.
func (e *Exchange) Info() *info.Info { return e.info }

// Address returns the account address, if a private key was configured.
func (e *Exchange) Address() mo.Option[common.Address] {
	if s, ok := e.signer.Get(); ok {
		return mo.Some(s.Identity().Address())
	}
	return mo.None[common.Address]()
}

func (e *Exchange) SubAccountID() uint8 { return e.subAccountID }

func (e *Exchange) Chain() constants.Chain { return e.chain }

// NewStream creates a stream client for the configured environment. The
// caller starts and stops it.
func (e *Exchange) NewStream() *ws.Client {
	return ws.New(ws.Config{
		URL:    e.wsURL,
		Logger: e.logger,
	})
}

// sharedParams builds fresh shared signing parameters. Each call draws a
// new nonce.
func (e *Exchange) sharedParams(subAccountID uint8) (message.SharedParams, error) {
	s, ok := e.signer.Get()
	if !ok {
		return message.SharedParams{}, errNoIdentity()
	}

	return message.SharedParams{
		Account:      s.Identity().Address(),
		SubAccountID: subAccountID,
		Nonce:        e.nonces.Next(),
	}, nil
}

// accountParams are the query params of account-scoped reads.
func (e *Exchange) accountParams(subAccountID uint8) (map[string]string, error) {
	address, ok := e.Address().Get()
	if !ok {
		return nil, errNoIdentity()
	}

	return map[string]string{
		"account":      address.Hex(),
		"subAccountId": strconv.FormatUint(uint64(subAccountID), 10),
	}, nil
}

func errNoIdentity() error {
	return &errs.AuthenticationError{Reason: "no private key configured"}
}
