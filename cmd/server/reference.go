package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lucopay/config"
	"lucopay/pkg/reference"
)

func newReferenceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Mint or verify payment references",
	}
	cmd.AddCommand(newReferenceNewCommand(), newReferenceVerifyCommand())
	return cmd
}

func newReferenceNewCommand() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Mint a reference, signed with SECRET_KEY when set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("length") {
				length = cfg.Reference.Length
			}
			signed, err := reference.New(length, cfg.Reference.Secret)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(signed)
		},
	}
	cmd.Flags().IntVarP(&length, "length", "l", reference.PaymentLength, "number of random characters after the prefix")
	return cmd
}

func newReferenceVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <reference> <signature>",
		Short: "Check that a reference was signed with SECRET_KEY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Reference.Secret == "" {
				return errors.New("SECRET_KEY is not set")
			}
			if !reference.Verify(args[0], args[1], cfg.Reference.Secret) {
				return fmt.Errorf("signature does not match %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}
