package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/davecgh/go-spew/spew"
	devnet "github.com/meme-bots/uniswap-devnet"
	"github.com/meme-bots/uniswap-devnet/config"
	"github.com/meme-bots/uniswap-devnet/evm"
	"github.com/meme-bots/uniswap-devnet/migrate"
	"github.com/meme-bots/uniswap-devnet/migrations"
	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/meme-bots/uniswap-devnet/utils"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

// recordingDeployer keeps every result so they can be verified and dumped
// after the run.
type recordingDeployer struct {
	types.Deployer
	results []*types.DeployResult
}

func (d *recordingDeployer) Deploy(ctx context.Context, name string, args ...interface{}) (*types.DeployResult, error) {
	res, err := d.Deployer.Deploy(ctx, name, args...)
	if err == nil {
		d.results = append(d.results, res)
	}
	return res, err
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run pending migrations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Run all migrations from the beginning",
			},
			&cli.IntFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Usage:   "Run from this migration id, ignoring recorded progress",
			},
			&cli.IntFlag{
				Name:  "to",
				Usage: "Run up to and including this migration id",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "List the migrations that would run",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "Read the router's factory and WETH back after deploying",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "Dump deploy results to stdout",
			},
		},
		Action: func(c *cli.Context) error {
			v, logger, err := setup(c)
			if err != nil {
				return err
			}
			cfg, err := config.LoadDeploy(v)
			if err != nil {
				return err
			}

			ctx := c.Context
			session, err := devnet.Dial(ctx, *cfg, logger)
			if err != nil {
				return err
			}
			defer session.Close()

			deployer := session.Deployer
			balance, err := deployer.Balance(ctx)
			if err != nil {
				return fmt.Errorf("deployer balance: %w", err)
			}
			logger.Info("using deployer",
				"address", deployer.From().Hex(),
				"chain_id", deployer.ChainID(),
				"balance_eth", utils.FormatUnits(balance, types.NativeTokenDecimals),
			)

			recorder := &recordingDeployer{Deployer: deployer}
			runner, err := migrate.NewRunner(migrations.All(), recorder, cfg.Network, session.Accounts, cfg.StateDir, logger)
			if err != nil {
				return err
			}

			_, err = runner.Run(ctx, migrate.Options{
				Reset:  c.Bool("reset"),
				From:   c.Int("from"),
				To:     c.Int("to"),
				DryRun: c.Bool("dry-run"),
			})
			if err != nil {
				return err
			}

			if c.Bool("verify") {
				for _, res := range recorder.results {
					if res.Contract != types.ContractRouter {
						continue
					}
					if err := evm.VerifyRouter(ctx, cfg.RPC, res.Address, migrations.Factory, migrations.WETH); err != nil {
						return fmt.Errorf("verify %s: %w", res.Address.Hex(), err)
					}
					logger.Info("router verified", "address", res.Address.Hex())
				}
			}

			if c.Bool("dump") && len(recorder.results) > 0 {
				spew.Fdump(c.App.Writer, recorder.results)
			}
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show recorded and pending migrations for the network",
		Action: func(c *cli.Context) error {
			v, logger, err := setup(c)
			if err != nil {
				return err
			}
			network := v.GetString(config.EnvNetwork)
			stateDir := v.GetString(config.EnvStateDir)

			state, err := migrate.LoadState(stateDir, network)
			if err != nil {
				return err
			}
			runner, err := migrate.NewRunner(migrations.All(), nil, network, nil, stateDir, logger)
			if err != nil {
				return err
			}
			pending, err := runner.Pending(migrate.Options{})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCOMPLETED")
			for _, r := range state.Records {
				fmt.Fprintf(w, "%d\t%s\tdone\t%s\n", r.ID, r.Name, time.Unix(r.CompletedAt, 0).UTC().Format(time.RFC3339))
			}
			for _, m := range pending {
				fmt.Fprintf(w, "%d\t%s\tpending\t-\n", m.ID, m.Name)
			}
			return w.Flush()
		},
	}
}

func setup(c *cli.Context) (*viper.Viper, *slog.Logger, error) {
	v, err := config.New(c.String("env-file"))
	if err != nil {
		return nil, nil, err
	}
	if c.IsSet("network") {
		v.Set(config.EnvNetwork, c.String("network"))
	}
	if c.IsSet("rpc") {
		v.Set(config.EnvRPC, c.String("rpc"))
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevel(v)}))
	slog.SetDefault(logger)
	return v, logger, nil
}
