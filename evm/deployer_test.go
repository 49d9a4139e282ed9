package evm

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/meme-bots/uniswap-devnet/artifact"
	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// init code that returns a five byte runtime and ignores constructor args
const stubBytecode = "0x6005600c60003960056000f360006000f3"

const stubABI = `[{"inputs":[{"internalType":"address","name":"_factory","type":"address"},{"internalType":"address","name":"_WETH","type":"address"}],"stateMutability":"nonpayable","type":"constructor"}]`

func newSimulatedDeployer(t *testing.T) (*Deployer, *artifact.Store) {
	t.Helper()

	keys, err := DeriveKeys(testMnemonic, 1)
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(keys[0].PublicKey)

	balance := new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))
	sim := simulated.NewBackend(gethtypes.GenesisAlloc{from: {Balance: balance}})
	t.Cleanup(func() { sim.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sim.Commit()
			}
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	dir := t.TempDir()
	doc, err := json.Marshal(map[string]interface{}{
		"contractName": types.ContractRouter,
		"abi":          json.RawMessage(stubABI),
		"bytecode":     stubBytecode,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, types.ContractRouter+".json"), doc, 0o644))

	store, err := artifact.NewStore(dir)
	require.NoError(t, err)

	d, err := NewDeployer(
		context.Background(),
		sim.Client(),
		&types.Config{ConfirmTimeout: 30 * time.Second},
		store,
		keys[0],
		slog.New(slog.NewTextHandler(os.Stderr, nil)),
	)
	require.NoError(t, err)
	return d, store
}

func TestDeployer_Deploy(t *testing.T) {
	d, store := newSimulatedDeployer(t)
	ctx := context.Background()

	factory := common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")
	weth := common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")

	res, err := d.Deploy(ctx, types.ContractRouter, factory, weth)
	require.NoError(t, err)

	assert.Equal(t, types.ContractRouter, res.Contract)
	assert.Equal(t, crypto.CreateAddress(d.From(), 0), res.Address)
	assert.Equal(t, d.ChainID(), res.ChainID)
	assert.NotZero(t, res.GasUsed)
	assert.Positive(t, res.Cost.Sign())

	recorded, err := store.Deployed(ctx, types.ContractRouter, d.ChainID())
	require.NoError(t, err)
	assert.Equal(t, res.Address, recorded)

	balance, err := d.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, -1, balance.Cmp(new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))))
}

func TestDeployer_DeployMissingArtifact(t *testing.T) {
	d, _ := newSimulatedDeployer(t)

	_, err := d.Deploy(context.Background(), "UniswapV2Factory")
	assert.ErrorIs(t, err, types.ErrArtifactNotFound)
}

func TestDeployer_DeployBadArgs(t *testing.T) {
	d, _ := newSimulatedDeployer(t)

	_, err := d.Deploy(context.Background(), types.ContractRouter, "not an address")
	assert.Error(t, err)
}
