package types

import "time"

type (
	Config struct {
		Type    int
		Network string
		RPC     string

		Mnemonic     string
		AccountCount int

		ArtifactsDir string
		StateDir     string // migration progress

		GasLimit       uint64 // 0 estimates
		ConfirmTimeout time.Duration
	}

	NodeConfig struct {
		Executable string
		ForkURL    string // API key is appended
		APIKey     string
		Mnemonic   string
		Balance    string // ether per account
		ExtraArgs  []string
	}
)
