package exchange

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/FedererKK/citrex-go/constants"
	"github.com/joho/godotenv"
	"github.com/maxatome/go-testdeep/helpers/tdsuite"
	"github.com/maxatome/go-testdeep/td"
	"github.com/shopspring/decimal"
)

// ExchangeIntegrationSuite groups manual integration tests for the exchange.
type ExchangeIntegrationSuite struct {
	exchange *Exchange
	product  uint32
}

// Setup is called once before any test runs.
func (s *ExchangeIntegrationSuite) Setup(t *td.T) error {
	cfg, err := LoadConfig("../.env")
	if err != nil {
		return err
	}
	if cfg.PrivateKey == nil {
		return fmt.Errorf("%s not set in environment", ENV_PRIVATE_KEY)
	}

	cfg.Chain = constants.SEI_TESTNET
	cfg.Environment = constants.TEST

	e, err := New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create exchange client: %w", err)
	}

	product, err := e.Info().ProductID(context.Background(), "ethperp")
	if err != nil {
		return fmt.Errorf("failed to resolve product: %w", err)
	}

	s.exchange = e
	s.product = product

	return nil
}

// Test entry point for the suite.
// By default, the whole suite is skipped unless RUN_EXCHANGE_INTEGRATION=1.
func TestExchangeIntegrationSuite(t *testing.T) {
	_ = godotenv.Load("../.env")

	if os.Getenv("RUN_EXCHANGE_INTEGRATION") != "1" {
		t.Skip(
			"skipping ExchangeIntegrationSuite; set RUN_EXCHANGE_INTEGRATION=1 to run",
		)
	}

	tdsuite.Run(t, &ExchangeIntegrationSuite{})
}

func (s *ExchangeIntegrationSuite) TestServerTime(assert, require *td.T) {
	st, err := s.exchange.GetServerTime(context.Background())
	require.CmpNoError(err)
	assert.Gt(st.ServerTime, int64(0))
}

func (s *ExchangeIntegrationSuite) TestAccountReads(assert, require *td.T) {
	ctx := context.Background()

	health, err := s.exchange.GetAccountHealth(ctx)
	require.CmpNoError(err)
	fmt.Println("account health:", health)

	balances, err := s.exchange.GetSpotBalances(ctx)
	require.CmpNoError(err)
	fmt.Println("balances:", balances)

	_, err = s.exchange.GetPositions(ctx)
	assert.CmpNoError(err)
}

func (s *ExchangeIntegrationSuite) TestOrder(assert, require *td.T) {
	ctx := context.Background()

	// Place an order that should rest by setting the price very low
	order, err := s.exchange.CreateOrder(
		ctx,
		s.product,
		true,
		decimal.RequireFromString("0.01"),
		decimal.NewFromInt(100),
	)
	require.CmpNoError(err)
	fmt.Println("order response:", order)

	open, err := s.exchange.GetOpenOrders(ctx)
	require.CmpNoError(err)
	assert.Gt(len(open), 0)

	cancelled, err := s.exchange.CancelOrder(ctx, order.ID, s.product)
	require.CmpNoError(err)
	fmt.Println("cancel response:", cancelled)
}

func (s *ExchangeIntegrationSuite) TestCancelAndReplace(assert, require *td.T) {
	ctx := context.Background()

	order, err := s.exchange.CreateOrder(
		ctx,
		s.product,
		true,
		decimal.RequireFromString("0.01"),
		decimal.NewFromInt(100),
	)
	require.CmpNoError(err)

	replaced, err := s.exchange.CancelAndReplaceOrder(
		ctx,
		order.ID,
		s.product,
		true,
		decimal.RequireFromString("0.01"),
		decimal.NewFromInt(101),
	)
	require.CmpNoError(err)
	assert.Not(replaced.ID, order.ID)

	_, err = s.exchange.CancelAllOrders(ctx, s.exchange.SubAccountID(), s.product)
	assert.CmpNoError(err)
}
