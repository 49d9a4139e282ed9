package types

const (
	// Contract artifact names.
	ContractRouter = "UniswapV2Router02"

	// Placeholder substituted for an unset environment value.
	Undefined = "undefined"

	DefaultNodeExecutable = "ganache-cli"
	DefaultForkURL        = "https://mainnet.infura.io/v3/"
	DefaultNodeBalance    = "1000"
	DefaultAccountCount   = 10
	DefaultNetwork        = "development"
	DefaultRPC            = "http://127.0.0.1:8545"
	DefaultArtifactsDir   = "build/contracts"
	DefaultStateDir       = ".migrations"

	NativeTokenDecimals = 18
)
