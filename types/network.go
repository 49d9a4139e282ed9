package types

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

type (
	// Deployer publishes compiled artifacts to a network.
	Deployer interface {
		Deploy(ctx context.Context, artifact string, args ...interface{}) (*DeployResult, error)
	}

	// MigrationFunc is a single deployment step. The runner supplies the
	// deployer, the network name and the unlocked accounts.
	MigrationFunc func(ctx context.Context, deployer Deployer, network string, accounts []common.Address) error

	Migration struct {
		ID   int
		Name string
		Run  MigrationFunc
	}
)

const (
	NetworkTypeEVM int = iota
	NetworkTypeSol
)
