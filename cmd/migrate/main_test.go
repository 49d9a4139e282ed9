package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/meme-bots/uniswap-devnet/migrate"
	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCommand(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("MIGRATIONS_STATE_DIR", stateDir)
	envFile := filepath.Join(t.TempDir(), "absent.env")

	tests := []struct {
		name      string
		state     *types.MigrationState
		checkFunc func(t *testing.T, output string)
	}{
		{
			name: "nothing run yet",
			checkFunc: func(t *testing.T, output string) {
				assert.Contains(t, output, "deploy_router")
				assert.Contains(t, output, "pending")
				assert.NotContains(t, output, "done")
			},
		},
		{
			name: "router deployed",
			state: &types.MigrationState{
				Network:       "fork",
				LastCompleted: 2,
				Records:       []types.MigrationRecord{{ID: 2, Name: "deploy_router", CompletedAt: 1700000000}},
			},
			checkFunc: func(t *testing.T, output string) {
				assert.Contains(t, output, "done")
				assert.Contains(t, output, "2023-11-14T22:13:20Z")
				assert.NotContains(t, output, "pending")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.state != nil {
				require.NoError(t, migrate.SaveState(stateDir, tt.state))
			}

			var out bytes.Buffer
			app := newApp()
			app.Writer = &out
			require.NoError(t, app.Run([]string{"migrate", "--env-file", envFile, "--network", "fork", "status"}))
			tt.checkFunc(t, out.String())
		})
	}
}

// Needs a running node, e.g. start-devnet, with the router artifact built.
func TestRunCommand_AgainstDevnet(t *testing.T) {
	if os.Getenv("RUN_CHAIN_TESTS") == "" {
		t.Skip("Skipping chain integration test (set RUN_CHAIN_TESTS=1 to enable)")
	}
	t.Setenv("MIGRATIONS_STATE_DIR", t.TempDir())

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	require.NoError(t, app.Run([]string{"migrate", "run", "--reset", "--dump"}))
	assert.Contains(t, out.String(), types.ContractRouter)
}
