package commands

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name> <owner>",
	Short: "Scan an owner's registry projects for a name match.",
	Args:  cobra.ExactArgs(2),
	Run:   resolveRun,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func resolveRun(cmd *cobra.Command, args []string) {
	name := args[0]
	owner := args[1]

	lgr, err := client()
	if err != nil {
		log.Fatal(err)
	}
	defer lgr.Close()

	ctx := context.Background()

	ids, err := lgr.UserProjects(ctx, owner)
	if err != nil {
		log.Fatal(err)
	}

	for _, id := range ids {
		prj, err := lgr.Project(ctx, id)
		if err != nil {
			fmt.Printf("chain id %d: read failed: %s\n", id, err)
			continue
		}

		if prj.Name == name && strings.EqualFold(prj.Owner, owner) {
			fmt.Println("ChainID:", prj.ID)
			return
		}
	}

	log.Fatalf("no project named %q for owner %s", name, owner)
}
