package info

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/FedererKK/citrex-go/errs"
	"github.com/FedererKK/citrex-go/rest"
	"go.uber.org/zap"
)

const (
	productsPath = "/v1/products"
	symbolsPath  = "/v1/symbols"
)

// Info provides access to public market metadata via the REST API. Reads
// are unauthenticated and bypass the endpoint registry.
type Info struct {
	rest   rest.ClientInterface
	logger *zap.Logger

	mu              sync.RWMutex
	symbolToProduct map[string]uint32
}

// Config for initializing the Info client
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport replaces the REST client built from BaseURL and Timeout.
	Transport rest.ClientInterface
	Logger    *zap.Logger
}

// New creates a new Info client
func New(cfg Config) *Info {
	client := cfg.Transport
	if client == nil {
		client = rest.New(rest.Config{
			BaseUrl: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Info{
		rest:            client,
		logger:          logger,
		symbolToProduct: make(map[string]uint32),
	}
}

// ===== Products =====

// GetProducts retrieves every listed product.
func (i *Info) GetProducts(ctx context.Context) ([]Product, error) {
	result, err := rest.Get[productsResponse](ctx, i.rest, productsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}

	i.SetProductMapping(result.Products)

	return result.Products, nil
}

// GetProduct retrieves one product by symbol (e.g. "ethperp").
func (i *Info) GetProduct(ctx context.Context, symbol string) (*Product, error) {
	if symbol == "" {
		return nil, errs.Invalid("symbol", "is required")
	}

	result, err := rest.Get[Product](ctx, i.rest, productsPath+"/"+url.PathEscape(symbol), nil)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", symbol, err)
	}

	i.SetProductMapping([]Product{result})

	return &result, nil
}

// ===== Symbols =====

// GetSymbols retrieves every tradable symbol.
func (i *Info) GetSymbols(ctx context.Context) ([]Symbol, error) {
	result, err := rest.Get[symbolsResponse](ctx, i.rest, symbolsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("get symbols: %w", err)
	}

	return result.Symbols, nil
}

// GetSymbol retrieves one symbol.
func (i *Info) GetSymbol(ctx context.Context, symbol string) (*Symbol, error) {
	if symbol == "" {
		return nil, errs.Invalid("symbol", "is required")
	}

	result, err := rest.Get[Symbol](ctx, i.rest, symbolsPath+"/"+url.PathEscape(symbol), nil)
	if err != nil {
		return nil, fmt.Errorf("get symbol %s: %w", symbol, err)
	}

	return &result, nil
}

// ===== Symbol Mapping =====

// ProductID resolves a symbol to its product id, fetching the product list
// the first time an unknown symbol is seen.
func (i *Info) ProductID(ctx context.Context, symbol string) (uint32, error) {
	if id, ok := i.GetProductID(symbol); ok {
		return id, nil
	}

	if _, err := i.GetProducts(ctx); err != nil {
		return 0, err
	}

	id, ok := i.GetProductID(symbol)
	if !ok {
		return 0, errs.Invalid("symbol", "unknown: %s", symbol)
	}
	return id, nil
}

// GetProductID looks symbol up in the cached mapping only.
func (i *Info) GetProductID(symbol string) (uint32, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	id, ok := i.symbolToProduct[strings.ToLower(symbol)]
	return id, ok
}

// SetProductMapping records the symbol of each product.
func (i *Info) SetProductMapping(products []Product) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for _, p := range products {
		if p.Symbol == "" {
			continue
		}
		i.symbolToProduct[strings.ToLower(p.Symbol)] = p.ID
	}

	i.logger.Debug("product mapping updated", zap.Int("products", len(i.symbolToProduct)))
}
