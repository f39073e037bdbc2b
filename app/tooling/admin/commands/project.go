package commands

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project <chain-id>",
	Short: "Print the registry record for a chain id.",
	Args:  cobra.ExactArgs(1),
	Run:   projectRun,
}

func init() {
	rootCmd.AddCommand(projectCmd)
}

func projectRun(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		log.Fatal(err)
	}

	lgr, err := client()
	if err != nil {
		log.Fatal(err)
	}
	defer lgr.Close()

	prj, err := lgr.Project(context.Background(), id)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("ChainID:    ", prj.ID)
	fmt.Println("Name:       ", prj.Name)
	fmt.Println("Owner:      ", prj.Owner)
	fmt.Println("TotalFunds: ", prj.TotalFunds)
	fmt.Println("FundingGoal:", prj.FundingGoal)
	fmt.Println("Verified:   ", prj.IsVerified)
	fmt.Println("Active:     ", prj.IsActive)
}
