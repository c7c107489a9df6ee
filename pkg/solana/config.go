package solana

type Environment string

const (
	EnvironmentLocal Environment = "http://127.0.0.1:8899"
	EnvironmentDev   Environment = "https://api.devnet.solana.com"
	EnvironmentTest  Environment = "https://api.testnet.solana.com"
	EnvironmentProd  Environment = "https://api.mainnet-beta.solana.com"
)

// EnvironmentFromString maps a cluster moniker to its public RPC endpoint.
// Anything else is treated as an endpoint URL.
func EnvironmentFromString(s string) Environment {
	switch s {
	case "localnet", "local":
		return EnvironmentLocal
	case "devnet", "dev":
		return EnvironmentDev
	case "testnet", "test":
		return EnvironmentTest
	case "mainnet-beta", "mainnet", "prod":
		return EnvironmentProd
	default:
		return Environment(s)
	}
}
