package commands

import (
	"fmt"

	"github.com/quokkafs/quadm/pkg/admin"
	"github.com/spf13/cobra"
)

func newDescribeCmd(registry *admin.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <cmd>",
		Short: "Describe one admin command",
		Long:  `Print the description of a single admin command from the catalog.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := registry.Lookup(args[0]); !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "no such command: %s\n", args[0])
				return errReported
			}
			fmt.Fprintln(cmd.OutOrStdout(), registry.DescribeOne(args[0]))
			return nil
		},
	}
}
