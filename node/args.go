package node

import (
	"fmt"
	"runtime"

	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/meme-bots/uniswap-devnet/utils"
)

const (
	EnvAPIKey     = "INFURA_API_KEY"
	EnvMnemonic   = "MNEMONIC"
	EnvExecutable = "GANACHE_BIN"
	EnvForkURL    = "FORK_URL"
	EnvBalance    = "NODE_BALANCE"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

func DefaultExecutable() string {
	if runtime.GOOS == "windows" {
		return types.DefaultNodeExecutable + ".cmd"
	}
	return types.DefaultNodeExecutable
}

// ConfigFromEnv reads the launcher settings. An unset secret is replaced
// with the "undefined" placeholder unless strict is set, in which case it
// is an error.
func ConfigFromEnv(lookup LookupFunc, strict bool) (*types.NodeConfig, error) {
	cfg := &types.NodeConfig{
		Executable: valueOr(lookup, EnvExecutable, DefaultExecutable()),
		ForkURL:    valueOr(lookup, EnvForkURL, types.DefaultForkURL),
		Balance:    valueOr(lookup, EnvBalance, types.DefaultNodeBalance),
	}

	var missing []string
	secret := func(key string) string {
		v, ok := lookup(key)
		if !ok || v == "" {
			missing = append(missing, key)
		}
		if !ok {
			return types.Undefined
		}
		return v
	}
	cfg.APIKey = secret(EnvAPIKey)
	cfg.Mnemonic = secret(EnvMnemonic)

	if strict && len(missing) > 0 {
		return nil, fmt.Errorf("%v: %w", missing, types.ErrMissingEnv)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Validate(cfg *types.NodeConfig) error {
	wei, err := utils.ParseUnits(cfg.Balance, types.NativeTokenDecimals)
	if err != nil || wei.Sign() <= 0 {
		return fmt.Errorf("%q: %w", cfg.Balance, types.ErrInvalidBalance)
	}
	return nil
}

// BuildArgs returns the simulator argument vector:
//
//	-f <fork url><api key> -e <balance> -m <mnemonic> [extra...]
func BuildArgs(cfg *types.NodeConfig) []string {
	args := []string{
		"-f", cfg.ForkURL + cfg.APIKey,
		"-e", cfg.Balance,
		"-m", cfg.Mnemonic,
	}
	return append(args, cfg.ExtraArgs...)
}

func valueOr(lookup LookupFunc, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}
