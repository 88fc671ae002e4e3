package exchange

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/FedererKK/citrex-go/constants"
	"github.com/FedererKK/citrex-go/signing"
	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	ENV_PRIVATE_KEY   = "CITREX_PRIVATE_KEY"
	ENV_CHAIN         = "CITREX_CHAIN"
	ENV_ENVIRONMENT   = "CITREX_ENV"
	ENV_SUBACCOUNT_ID = "CITREX_SUBACCOUNT_ID"
	ENV_BASE_URL      = "CITREX_BASE_URL"
	ENV_WS_URL        = "CITREX_WS_URL"
	ENV_TIMEOUT       = "CITREX_TIMEOUT"
)

// LoadConfig loads the given .env files (".env" when none are given) and
// builds a Config from the environment. Missing files are ignored and
// variables already set in the process environment win.
func LoadConfig(paths ...string) (Config, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}

	var cfg Config

	chain, err := constants.ParseChain(os.Getenv(ENV_CHAIN))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", ENV_CHAIN, err)
	}
	cfg.Chain = chain

	env, err := constants.ParseEnvironment(os.Getenv(ENV_ENVIRONMENT))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", ENV_ENVIRONMENT, err)
	}
	cfg.Environment = env

	if raw := os.Getenv(ENV_PRIVATE_KEY); raw != "" {
		key, err := signing.ParsePrivateKey(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", ENV_PRIVATE_KEY, err)
		}
		cfg.PrivateKey = key
	}

	if raw := os.Getenv(ENV_SUBACCOUNT_ID); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", ENV_SUBACCOUNT_ID, err)
		}
		cfg.SubAccountID = uint8(id)
	}

	if raw := os.Getenv(ENV_TIMEOUT); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", ENV_TIMEOUT, err)
		}
		cfg.Timeout = timeout
	} else {
		cfg.Timeout = constants.DEFAULT_TIMEOUT
	}

	cfg.BaseURL = os.Getenv(ENV_BASE_URL)
	cfg.WSURL = os.Getenv(ENV_WS_URL)

	return cfg, nil
}
