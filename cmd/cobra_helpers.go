package cmd

import "github.com/spf13/cobra"

// addCommand applies the flag helpers to child and attaches it to parent.
func addCommand(parent *cobra.Command, child *cobra.Command, flags ...func(cmd *cobra.Command)) *cobra.Command {
	for _, fn := range flags {
		fn(child)
	}
	parent.AddCommand(child)

	return child
}

const ArgWhere = "where"

func withWhereFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceP(ArgWhere, "w", []string{}, "Only include stories matching every filter (like priority==High, epic?=^Auth or title~=login).")
}
