package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/warpgate/warpgate/database/models"
)

var rotateKind string

var rotateCMD = &cobra.Command{
	Use:   "rotate",
	Short: "Reset quest progress for a quest kind now",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.ValidQuestKind(rotateKind) {
			return fmt.Errorf("unknown quest kind %q", rotateKind)
		}

		ctx := cmd.Context()
		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		_, reset, err := e.ledger.RotateQuests(ctx, rotateKind, true)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "reset %d %s quests\n", reset, rotateKind)
		return nil
	},
}

func init() {
	rotateCMD.Flags().StringVar(&rotateKind, "kind", models.QuestKindDaily, "quest kind (daily or weekly)")
}
