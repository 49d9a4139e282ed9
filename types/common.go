package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type (
	DeployResult struct {
		Contract string
		Address  common.Address
		TxHash   common.Hash
		ChainID  uint64
		GasUsed  uint64
		Cost     *big.Int // wei
	}

	MigrationRecord struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		CompletedAt int64  `json:"completedAt"`
	}

	MigrationState struct {
		Network       string            `json:"network"`
		LastCompleted int               `json:"lastCompleted"`
		Records       []MigrationRecord `json:"records"`
	}
)
