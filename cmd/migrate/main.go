package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "migrate",
		Usage: "Deploy the project's contracts through numbered migrations",
		Description: `Derives the deployer from MNEMONIC (m/44'/60'/0'/0/0, the same account
ganache unlocks for -m), connects to RPC_URL and runs every migration not
yet recorded for NETWORK. Progress is kept in MIGRATIONS_STATE_DIR.`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to read before the environment",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "network",
				Aliases: []string{"n"},
				Usage:   "Network name used to key migration progress",
			},
			&cli.StringFlag{
				Name:  "rpc",
				Usage: "JSON-RPC endpoint",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			statusCommand(),
		},
		DefaultCommand: "run",
	}
}
