package commands

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"
)

var contributionCmd = &cobra.Command{
	Use:   "contribution <owner> <chain-id>",
	Short: "Print a user's total contribution to a project.",
	Args:  cobra.ExactArgs(2),
	Run:   contributionRun,
}

func init() {
	rootCmd.AddCommand(contributionCmd)
}

func contributionRun(cmd *cobra.Command, args []string) {
	owner := args[0]

	id, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		log.Fatal(err)
	}

	lgr, err := client()
	if err != nil {
		log.Fatal(err)
	}
	defer lgr.Close()

	amount, err := lgr.UserContribution(context.Background(), owner, id)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Contribution:", amount)
}
