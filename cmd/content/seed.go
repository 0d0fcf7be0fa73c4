package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCMD = &cobra.Command{
	Use:   "seed",
	Short: "Upsert card and quest templates from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := LoadContent(seedFile)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		cards, quests := content.Models()
		res, err := e.ledger.ImportContent(ctx, cards, quests)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d cards and %d quests\n", res.Cards, res.Quests)
		return nil
	},
}

func init() {
	seedCMD.Flags().StringVarP(&seedFile, "file", "f", "content.yaml", "content file")
}
