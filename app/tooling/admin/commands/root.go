// Package commands contains the admin tool commands.
package commands

import (
	"os"

	"github.com/ecochain/ecochain/foundation/ledger"
	"github.com/spf13/cobra"
)

var (
	rpcURL       string
	registryAddr string
	vaultAddr    string
	chainID      uint64
	keyFile      string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rpcURL, "rpc-url", "u", "https://sepolia.base.org", "Url of the rpc endpoint.")
	rootCmd.PersistentFlags().StringVarP(&registryAddr, "registry", "r", "0x01fB5005481DA32adB5A289db24fd08CBA46B07F", "Address of the project registry contract.")
	rootCmd.PersistentFlags().StringVarP(&vaultAddr, "vault", "v", "0xe35Df24D4747b246Fe8C9dDCA28BbC33aDcC2Bc2", "Address of the funding vault contract.")
	rootCmd.PersistentFlags().Uint64VarP(&chainID, "chain-id", "c", 84532, "Chain id of the network.")
	rootCmd.PersistentFlags().StringVarP(&keyFile, "key-file", "k", "", "Path to the verifier private key.")
}

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Spot checks against the on-chain registry and vault",
}

// Execute runs the selected command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// client constructs a ledger client from the persistent flags.
func client() (*ledger.Client, error) {
	return ledger.New(ledger.Config{
		RPCURL:          rpcURL,
		RegistryAddress: registryAddr,
		VaultAddress:    vaultAddr,
		ChainID:         chainID,
		KeyFile:         keyFile,
	})
}
