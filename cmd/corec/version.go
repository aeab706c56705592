package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped at release time; corec has no release pipeline of
// its own yet, so it stays a fixed development marker.
const version = "0.1.0-dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the corec version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "corec %s\n", version)
			return nil
		},
	}
}
