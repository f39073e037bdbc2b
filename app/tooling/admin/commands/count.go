package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of projects the registry holds.",
	Args:  cobra.NoArgs,
	Run:   countRun,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

func countRun(cmd *cobra.Command, args []string) {
	lgr, err := client()
	if err != nil {
		log.Fatal(err)
	}
	defer lgr.Close()

	count, err := lgr.ProjectCount(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Projects:", count)
}
