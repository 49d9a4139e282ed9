package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	t "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/meme-bots/uniswap-devnet/artifact"
	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/meme-bots/uniswap-devnet/utils"
)

const defaultConfirmTimeout = 2 * time.Minute

var ErrDeployReverted = errors.New("deployment reverted")

type Deployer struct {
	backend   Backend
	artifacts *artifact.Store
	key       *ecdsa.PrivateKey
	from      common.Address
	chainId   uint64
	gasLimit  uint64
	timeout   time.Duration
	logger    *slog.Logger
}

// NewDeployer deploys from key. The chain id is fetched once here.
func NewDeployer(
	ctx context.Context,
	backend Backend,
	cfg *types.Config,
	artifacts *artifact.Store,
	key *ecdsa.PrivateKey,
	logger *slog.Logger,
) (*Deployer, error) {
	chainId, err := ChainID(ctx, backend)
	if err != nil {
		return nil, fmt.Errorf("fetch chain id: %w", err)
	}

	timeout := cfg.ConfirmTimeout
	if timeout <= 0 {
		timeout = defaultConfirmTimeout
	}

	return &Deployer{
		backend:   backend,
		artifacts: artifacts,
		key:       key,
		from:      crypto.PubkeyToAddress(key.PublicKey),
		chainId:   chainId,
		gasLimit:  cfg.GasLimit,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

func (d *Deployer) From() common.Address {
	return d.from
}

func (d *Deployer) ChainID() uint64 {
	return d.chainId
}

func (d *Deployer) Balance(ctx context.Context) (*big.Int, error) {
	return d.backend.BalanceAt(ctx, d.from, nil)
}

func (d *Deployer) Deploy(ctx context.Context, name string, args ...interface{}) (*types.DeployResult, error) {
	a, err := d.artifacts.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	auth, err := bind.NewKeyedTransactorWithChainID(d.key, new(big.Int).SetUint64(d.chainId))
	if err != nil {
		return nil, err
	}

	gasPrice, err := d.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}
	auth.Context = ctx
	auth.GasPrice = gasPrice
	auth.GasLimit = d.gasLimit

	address, tx, _, err := bind.DeployContract(auth, a.ABI, a.Bytecode, d.backend, args...)
	if err != nil {
		return nil, fmt.Errorf("deploy %s: %w", name, err)
	}
	d.logger.Info("deploying contract",
		"contract", name,
		"tx", tx.Hash().Hex(),
		"address", address.Hex(),
		"from", d.from.Hex(),
	)

	waitCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, d.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != t.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s in %s: %w", name, tx.Hash().Hex(), ErrDeployReverted)
	}

	code, err := d.backend.CodeAt(waitCtx, receipt.ContractAddress, nil)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, bind.ErrNoCodeAfterDeploy
	}

	price := receipt.EffectiveGasPrice
	if price == nil {
		price = tx.GasPrice()
	}
	cost := new(big.Int).Mul(new(big.Int).SetUint64(receipt.GasUsed), price)

	if err := d.artifacts.SaveDeployment(ctx, name, d.chainId, receipt.ContractAddress, tx.Hash()); err != nil {
		return nil, fmt.Errorf("record %s deployment: %w", name, err)
	}

	d.logger.Info("contract deployed",
		"contract", name,
		"address", receipt.ContractAddress.Hex(),
		"gas_used", receipt.GasUsed,
		"cost_eth", utils.FormatUnits(cost, types.NativeTokenDecimals),
	)

	return &types.DeployResult{
		Contract: name,
		Address:  receipt.ContractAddress,
		TxHash:   tx.Hash(),
		ChainID:  d.chainId,
		GasUsed:  receipt.GasUsed,
		Cost:     cost,
	}, nil
}
