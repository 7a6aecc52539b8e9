package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eclipse-sw360/sw360-search/internal/domain/search/variant"
)

// NewExpandCmd creates the 'expand' command that prints the query variants of a text.
func NewExpandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <text>",
		Short: "Print the exact-match variants searched for a package URL",
		Long: `Print every quoted variant the search engine queries for a text.
Texts without "pkg:" are searched as a single wildcard query.`,
		Example: `  sw360ctl expand "pkg:maven/org.apache@1.0"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			text := args[0]
			if !variant.IsPackageURL(text) {
				_, err := fmt.Fprintf(out, "%s\t(wildcard)\n", text)
				return err
			}
			for _, v := range variant.Expand(text) {
				if _, err := fmt.Fprintln(out, v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
