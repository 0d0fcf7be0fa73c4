package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/warpgate/warpgate/services"
)

var (
	uploadCard int64
	uploadFile string
)

var uploadCMD = &cobra.Command{
	Use:   "upload",
	Short: "Upload card artwork to Spaces and link it to the card",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(uploadFile)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		if len(data) > services.MaxImageSize {
			return fmt.Errorf("image is larger than %d bytes", services.MaxImageSize)
		}

		ctx := cmd.Context()
		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		if !e.cfg.Spaces.Enabled() {
			return errors.New("spaces is not configured")
		}
		spaces, err := services.NewSpacesService(ctx,
			e.cfg.Spaces.Key,
			e.cfg.Spaces.Secret,
			e.cfg.Spaces.Region,
			e.cfg.Spaces.Bucket,
			e.cfg.Spaces.CardRoot,
		)
		if err != nil {
			return err
		}

		card, err := e.cards.Get(ctx, uploadCard)
		if err != nil {
			return err
		}
		url, err := spaces.AttachCardImage(ctx, e.cards, card, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", card.Name, card.Rarity, url)
		return nil
	},
}

func init() {
	uploadCMD.Flags().Int64Var(&uploadCard, "card", 0, "card template id")
	uploadCMD.Flags().StringVarP(&uploadFile, "file", "f", "", "image file")
	_ = uploadCMD.MarkFlagRequired("card")
	_ = uploadCMD.MarkFlagRequired("file")
}
