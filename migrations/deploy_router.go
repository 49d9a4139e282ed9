package migrations

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/meme-bots/uniswap-devnet/types"
)

// Mainnet Uniswap V2 factory and WETH9.
var (
	Factory = common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")
	WETH    = common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")
)

// DeployRouter deploys UniswapV2Router02 against the mainnet factory and
// WETH. The network and accounts are not consulted.
func DeployRouter(ctx context.Context, deployer types.Deployer, network string, accounts []common.Address) error {
	_, err := deployer.Deploy(ctx, types.ContractRouter, Factory, WETH)
	return err
}
