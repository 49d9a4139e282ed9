package migrations

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deployCall struct {
	artifact string
	args     []interface{}
}

type recordingDeployer struct {
	calls []deployCall
	err   error
}

func (d *recordingDeployer) Deploy(_ context.Context, artifact string, args ...interface{}) (*types.DeployResult, error) {
	d.calls = append(d.calls, deployCall{artifact: artifact, args: args})
	if d.err != nil {
		return nil, d.err
	}
	return &types.DeployResult{Contract: artifact}, nil
}

func TestDeployRouter_SameRequestForAnyInputs(t *testing.T) {
	inputs := []struct {
		network  string
		accounts []common.Address
	}{
		{"development", nil},
		{"mainnet", []common.Address{common.HexToAddress("0x01")}},
		{"", []common.Address{common.HexToAddress("0x02"), common.HexToAddress("0x03")}},
	}

	for _, in := range inputs {
		d := &recordingDeployer{}
		require.NoError(t, DeployRouter(context.Background(), d, in.network, in.accounts))

		require.Len(t, d.calls, 1)
		assert.Equal(t, "UniswapV2Router02", d.calls[0].artifact)
		assert.Equal(t, []interface{}{
			common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"),
			common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"),
		}, d.calls[0].args)
	}
}

func TestDeployRouter_PropagatesError(t *testing.T) {
	boom := errors.New("out of gas")
	err := DeployRouter(context.Background(), &recordingDeployer{err: boom}, "development", nil)
	assert.ErrorIs(t, err, boom)
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].ID)
	assert.NotNil(t, all[0].Run)
}
