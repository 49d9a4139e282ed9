// Package migrate runs numbered deployment steps against a network and
// remembers how far it got.
package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/samber/lo"
)

type (
	Options struct {
		// Reset runs every migration regardless of recorded progress.
		Reset bool
		// From and To bound the IDs to run, inclusive. Zero means unbounded.
		// From also overrides recorded progress.
		From int
		To   int
		// DryRun reports what would run without running it.
		DryRun bool
	}

	Runner struct {
		migrations []types.Migration
		deployer   types.Deployer
		network    string
		accounts   []common.Address
		stateDir   string
		logger     *slog.Logger
		now        func() time.Time
	}
)

func NewRunner(
	migrations []types.Migration,
	deployer types.Deployer,
	network string,
	accounts []common.Address,
	stateDir string,
	logger *slog.Logger,
) (*Runner, error) {
	if dup := lo.FindDuplicatesBy(migrations, func(m types.Migration) int { return m.ID }); len(dup) > 0 {
		return nil, fmt.Errorf("duplicate migration id %d", dup[0].ID)
	}

	sorted := append([]types.Migration(nil), migrations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	return &Runner{
		migrations: sorted,
		deployer:   deployer,
		network:    network,
		accounts:   accounts,
		stateDir:   stateDir,
		logger:     logger.With("network", network),
		now:        time.Now,
	}, nil
}

func (r *Runner) Pending(opts Options) ([]types.Migration, error) {
	for _, id := range []int{opts.From, opts.To} {
		if id == 0 {
			continue
		}
		if !lo.ContainsBy(r.migrations, func(m types.Migration) bool { return m.ID == id }) {
			return nil, fmt.Errorf("migration %d: %w", id, types.ErrUnknownMigration)
		}
	}

	state, err := LoadState(r.stateDir, r.network)
	if err != nil {
		return nil, err
	}

	return lo.Filter(r.migrations, func(m types.Migration, _ int) bool {
		switch {
		case opts.From > 0:
			if m.ID < opts.From {
				return false
			}
		case !opts.Reset:
			if m.ID <= state.LastCompleted {
				return false
			}
		}
		return opts.To == 0 || m.ID <= opts.To
	}), nil
}

// Run executes the pending migrations in ID order and returns those that
// completed. It stops at the first failure; progress up to the last
// success is kept.
func (r *Runner) Run(ctx context.Context, opts Options) ([]types.Migration, error) {
	pending, err := r.Pending(opts)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		r.logger.Info("network up to date")
		return nil, nil
	}
	if opts.DryRun {
		for _, m := range pending {
			r.logger.Info("would run migration", "id", m.ID, "name", m.Name)
		}
		return nil, nil
	}

	state, err := LoadState(r.stateDir, r.network)
	if err != nil {
		return nil, err
	}

	done := make([]types.Migration, 0, len(pending))
	for _, m := range pending {
		r.logger.Info("running migration", "id", m.ID, "name", m.Name)
		start := r.now()

		if err := m.Run(ctx, r.deployer, r.network, r.accounts); err != nil {
			return done, fmt.Errorf("migration %d_%s: %w", m.ID, m.Name, err)
		}

		state.LastCompleted = m.ID
		state.Records = append(state.Records, types.MigrationRecord{
			ID:          m.ID,
			Name:        m.Name,
			CompletedAt: r.now().Unix(),
		})
		if err := SaveState(r.stateDir, state); err != nil {
			return done, fmt.Errorf("save progress after %d_%s: %w", m.ID, m.Name, err)
		}

		r.logger.Info("migration complete", "id", m.ID, "name", m.Name, "took", r.now().Sub(start))
		done = append(done, m)
	}
	return done, nil
}
