package evm

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/forta-network/go-multicall"
	"github.com/meme-bots/uniswap-devnet/evm/uniswap"
	"github.com/meme-bots/uniswap-devnet/types"
)

// VerifyRouter reads factory() and WETH() back from a deployed router in
// one multicall and compares them with the constructor arguments.
func VerifyRouter(ctx context.Context, rpcURL string, router, factory, weth common.Address) error {
	type addressOutput struct {
		Value common.Address
	}

	caller, err := multicall.Dial(ctx, rpcURL)
	if err != nil {
		return err
	}

	routerContract, err := multicall.NewContract(uniswap.RouterABI, router.Hex())
	if err != nil {
		return err
	}

	calls, err := caller.Call(
		&bind.CallOpts{Context: ctx},
		routerContract.NewCall( // 0
			new(addressOutput),
			"factory",
		),
		routerContract.NewCall( // 1
			new(addressOutput),
			"WETH",
		),
	)
	if err != nil {
		return err
	}

	gotFactory := calls[0].Outputs.(*addressOutput).Value
	gotWETH := calls[1].Outputs.(*addressOutput).Value

	if gotFactory != factory {
		return fmt.Errorf("factory is %s, want %s: %w", gotFactory.Hex(), factory.Hex(), types.ErrVerifyMismatch)
	}
	if gotWETH != weth {
		return fmt.Errorf("WETH is %s, want %s: %w", gotWETH.Hex(), weth.Hex(), types.ErrVerifyMismatch)
	}
	return nil
}
