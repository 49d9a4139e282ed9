// Package config reads settings from the process environment and an
// optional dotenv file. Process environment wins over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/meme-bots/uniswap-devnet/node"
	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/spf13/viper"
)

const (
	EnvLogLevel       = "LOG_LEVEL"
	EnvRPC            = "RPC_URL"
	EnvNetwork        = "NETWORK"
	EnvAccountCount   = "ACCOUNT_COUNT"
	EnvArtifactsDir   = "ARTIFACTS_DIR"
	EnvStateDir       = "MIGRATIONS_STATE_DIR"
	EnvGasLimit       = "GAS_LIMIT"
	EnvConfirmTimeout = "CONFIRM_TIMEOUT"
)

// New returns a viper instance over the environment and envFile. A
// missing envFile is not an error.
func New(envFile string) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	// distinguish FOO= from an unset FOO
	v.AllowEmptyEnv(true)

	v.SetDefault(EnvLogLevel, "info")
	v.SetDefault(EnvRPC, types.DefaultRPC)
	v.SetDefault(EnvNetwork, types.DefaultNetwork)
	v.SetDefault(EnvAccountCount, strconv.Itoa(types.DefaultAccountCount))
	v.SetDefault(EnvArtifactsDir, types.DefaultArtifactsDir)
	v.SetDefault(EnvStateDir, types.DefaultStateDir)
	v.SetDefault(EnvGasLimit, "0")
	v.SetDefault(EnvConfirmTimeout, "2m")

	if envFile == "" {
		return v, nil
	}

	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}
	return v, nil
}

// Lookup adapts v to node.LookupFunc.
func Lookup(v *viper.Viper) node.LookupFunc {
	return func(key string) (string, bool) {
		if !v.IsSet(key) {
			return "", false
		}
		return v.GetString(key), true
	}
}

func LoadNode(v *viper.Viper, strict bool) (*types.NodeConfig, error) {
	return node.ConfigFromEnv(Lookup(v), strict)
}

// LoadDeploy validates every field and reports all problems at once.
func LoadDeploy(v *viper.Viper) (*types.Config, error) {
	cfg := &types.Config{
		Type:         types.NetworkTypeEVM,
		Network:      v.GetString(EnvNetwork),
		RPC:          v.GetString(EnvRPC),
		Mnemonic:     strings.TrimSpace(v.GetString(node.EnvMnemonic)),
		ArtifactsDir: v.GetString(EnvArtifactsDir),
		StateDir:     v.GetString(EnvStateDir),
	}
	var errs []error

	if cfg.Mnemonic == "" {
		errs = append(errs, fmt.Errorf("%s is required", node.EnvMnemonic))
	}
	if cfg.RPC == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvRPC))
	}
	if cfg.Network == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvNetwork))
	}

	count, err := strconv.Atoi(v.GetString(EnvAccountCount))
	if err != nil || count < 1 {
		errs = append(errs, fmt.Errorf("%s must be a positive integer, got %q", EnvAccountCount, v.GetString(EnvAccountCount)))
	}
	cfg.AccountCount = count

	gasLimit, err := strconv.ParseUint(v.GetString(EnvGasLimit), 10, 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s must be a non-negative integer, got %q", EnvGasLimit, v.GetString(EnvGasLimit)))
	}
	cfg.GasLimit = gasLimit

	timeout, err := time.ParseDuration(v.GetString(EnvConfirmTimeout))
	if err != nil || timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s: invalid duration %q", EnvConfirmTimeout, v.GetString(EnvConfirmTimeout)))
	}
	cfg.ConfirmTimeout = timeout

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func LogLevel(v *viper.Viper) slog.Level {
	switch strings.ToLower(v.GetString(EnvLogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
