package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	healthuc "github.com/eclipse-sw360/sw360-search/internal/usecase/health"
)

// NewHealthCmd creates the 'health' command that pings both realms.
func NewHealthCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check connectivity of both realm stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			report := a.Health.Check(cmd.Context())
			out := cmd.OutOrStdout()

			names := make([]string, 0, len(report.Checks))
			for name := range report.Checks {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %-8s %s\n", name, report.Checks[name])
			}
			fmt.Fprintf(out, "Status: %s\n", report.Status)

			if report.Status != healthuc.Healthy {
				return fmt.Errorf("realms not healthy: %s", report.Status)
			}
			return nil
		},
	}
}
