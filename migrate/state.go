package migrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meme-bots/uniswap-devnet/types"
)

func statePath(dir, network string) string {
	return filepath.Join(dir, network+".json")
}

// LoadState returns the progress recorded for network, or an empty state
// if nothing has run there yet.
func LoadState(dir, network string) (*types.MigrationState, error) {
	raw, err := os.ReadFile(statePath(dir, network))
	if errors.Is(err, os.ErrNotExist) {
		return &types.MigrationState{Network: network}, nil
	}
	if err != nil {
		return nil, err
	}

	var state types.MigrationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode migration state %s: %w", network, err)
	}
	state.Network = network
	return &state, nil
}

func SaveState(dir string, state *types.MigrationState) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	path := statePath(dir, state.Network)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
