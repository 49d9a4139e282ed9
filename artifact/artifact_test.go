package artifact

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerABI = `[{"inputs":[{"internalType":"address","name":"_factory","type":"address"},{"internalType":"address","name":"_WETH","type":"address"}],"stateMutability":"nonpayable","type":"constructor"}]`

func writeArtifact(t *testing.T, dir, name, bytecode string) {
	t.Helper()
	doc := map[string]interface{}{
		"contractName": name,
		"abi":          json.RawMessage(routerABI),
		"bytecode":     bytecode,
		"compiler":     map[string]string{"name": "solc", "version": "0.6.6"},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), raw, 0o644))
}

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	return s, dir
}

func TestStore_Load(t *testing.T) {
	s, dir := newStore(t)
	writeArtifact(t, dir, "UniswapV2Router02", "0x6005600c60003960056000f360006000f3")

	a, err := s.Load(context.Background(), "UniswapV2Router02")
	require.NoError(t, err)
	assert.Equal(t, "UniswapV2Router02", a.Name)
	assert.Len(t, a.ABI.Constructor.Inputs, 2)
	assert.Equal(t, common.FromHex("0x6005600c60003960056000f360006000f3"), a.Bytecode)
	assert.Empty(t, a.Networks)
}

func TestStore_LoadErrors(t *testing.T) {
	s, dir := newStore(t)
	writeArtifact(t, dir, "IUniswapV2Router02", "0x")
	writeArtifact(t, dir, "Linked", "0x6080__$0123456789abcdef0123456789abcdef01$__6000")

	tests := []struct {
		name string
		want error
	}{
		{"Missing", types.ErrArtifactNotFound},
		{"IUniswapV2Router02", types.ErrNoBytecode},
		{"Linked", types.ErrUnlinkedLibrary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Load(context.Background(), tt.name)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStore_SaveDeployment(t *testing.T) {
	s, dir := newStore(t)
	ctx := context.Background()
	writeArtifact(t, dir, "UniswapV2Router02", "0x6005600c60003960056000f360006000f3")

	// prime the cache so the save has to invalidate it
	_, err := s.Load(ctx, "UniswapV2Router02")
	require.NoError(t, err)

	addr := common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	tx := common.HexToHash("0x01")
	require.NoError(t, s.SaveDeployment(ctx, "UniswapV2Router02", 1337, addr, tx))

	got, err := s.Deployed(ctx, "UniswapV2Router02", 1337)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	_, err = s.Deployed(ctx, "UniswapV2Router02", 1)
	assert.ErrorIs(t, err, types.ErrNotFound)

	raw, err := os.ReadFile(filepath.Join(dir, "UniswapV2Router02.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"compiler"`)
	assert.Contains(t, string(raw), tx.Hex())
}

func TestStore_SaveDeploymentMissing(t *testing.T) {
	s, _ := newStore(t)
	err := s.SaveDeployment(context.Background(), "Nope", 1, common.Address{}, common.Hash{})
	assert.ErrorIs(t, err, types.ErrArtifactNotFound)
}
