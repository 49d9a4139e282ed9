package evm

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cosmos/go-bip39"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/samber/lo"
)

// m/44'/60'/0'/0, the prefix ganache derives -m accounts from.
var defaultHDPath = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 60,
	hdkeychain.HardenedKeyStart + 0,
	0,
}

func DeriveKeys(mnemonic string, n int) ([]*ecdsa.PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, types.ErrInvalidMnemonic
	}

	master, err := hdkeychain.NewMaster(bip39.NewSeed(mnemonic, ""), &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}

	parent := master
	for _, idx := range defaultHDPath {
		parent, err = parent.Derive(idx)
		if err != nil {
			return nil, err
		}
	}

	keys := make([]*ecdsa.PrivateKey, 0, n)
	for i := 0; i < n; i++ {
		child, err := parent.Derive(uint32(i))
		if err != nil {
			return nil, fmt.Errorf("derive account %d: %w", i, err)
		}
		priv, err := child.ECPrivKey()
		if err != nil {
			return nil, err
		}
		key, err := crypto.ToECDSA(priv.Serialize())
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func DeriveAccounts(mnemonic string, n int) ([]common.Address, error) {
	keys, err := DeriveKeys(mnemonic, n)
	if err != nil {
		return nil, err
	}
	return Addresses(keys), nil
}

func Addresses(keys []*ecdsa.PrivateKey) []common.Address {
	return lo.Map(keys, func(k *ecdsa.PrivateKey, _ int) common.Address {
		return crypto.PubkeyToAddress(k.PublicKey)
	})
}
