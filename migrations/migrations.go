// Package migrations lists the project's deployment steps in the order
// they run.
package migrations

import "github.com/meme-bots/uniswap-devnet/types"

func All() []types.Migration {
	return []types.Migration{
		{ID: 2, Name: "deploy_router", Run: DeployRouter},
	}
}
