package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Backend is what the deployer needs from a node. *ethclient.Client and
// the simulated backend's client both satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

func ChainID(ctx context.Context, client Backend) (uint64, error) {
	cid, err := client.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return cid.Uint64(), nil
}
