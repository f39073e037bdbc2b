package commands

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <chain-id>",
	Short: "Submit a verification transaction for a chain id.",
	Args:  cobra.ExactArgs(1),
	Run:   verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyRun(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		log.Fatal(err)
	}

	lgr, err := client()
	if err != nil {
		log.Fatal(err)
	}
	defer lgr.Close()

	signer, ok := lgr.SignerAddress()
	if !ok {
		log.Fatal("verify: a key file is required, use --key-file")
	}
	fmt.Println("Signer:", signer)

	txHash, err := lgr.VerifyProject(context.Background(), id)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Tx:    ", txHash)
}
