package devnet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/meme-bots/uniswap-devnet/artifact"
	"github.com/meme-bots/uniswap-devnet/evm"
	"github.com/meme-bots/uniswap-devnet/types"
)

// Session is a connection to a network with the deployer unlocked from
// the configured mnemonic.
type Session struct {
	Deployer *evm.Deployer
	Accounts []common.Address
	client   *ethclient.Client
}

func Dial(ctx context.Context, cfg types.Config, logger *slog.Logger) (*Session, error) {
	if cfg.Type != types.NetworkTypeEVM {
		return nil, types.ErrNotImplemented
	}

	if cfg.AccountCount < 1 {
		return nil, fmt.Errorf("account count %d: need at least the deployer", cfg.AccountCount)
	}

	keys, err := evm.DeriveKeys(cfg.Mnemonic, cfg.AccountCount)
	if err != nil {
		return nil, err
	}

	artifacts, err := artifact.NewStore(cfg.ArtifactsDir)
	if err != nil {
		return nil, err
	}

	client, err := ethclient.DialContext(ctx, cfg.RPC)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.RPC, err)
	}

	deployer, err := evm.NewDeployer(ctx, client, &cfg, artifacts, keys[0], logger)
	if err != nil {
		client.Close()
		return nil, err
	}

	return &Session{
		Deployer: deployer,
		Accounts: evm.Addresses(keys),
		client:   client,
	}, nil
}

func (s *Session) Close() {
	s.client.Close()
}
