package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eclipse-sw360/sw360-search/internal/domain"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/request"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/result"
)

type searchOptions struct {
	types      []string
	email      string
	department string
	group      string
	jsonOutput bool
}

// NewSearchCmd creates the 'search' command.
func NewSearchCmd(g *globalOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search both realms and print merged results",
		Example: `  sw360ctl search openssl
  sw360ctl search jane --type user
  sw360ctl search "pkg:npm/lodash@4.17.21" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			req, err := request.New(&args[0], opts.types)
			if err != nil {
				return err
			}
			user := domain.User{
				Email:      opts.email,
				Department: opts.department,
				Group:      domain.UserGroup(opts.group),
			}

			results, err := a.Search.SearchFiltered(cmd.Context(), req, user)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeResultsJSON(cmd.OutOrStdout(), results)
			}
			return writeResultsTable(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.types, "type", "t", nil, "Restrict to document types (repeatable)")
	cmd.Flags().StringVar(&opts.email, "email", "", "Requesting user email")
	cmd.Flags().StringVar(&opts.department, "department", "", "Requesting user department")
	cmd.Flags().StringVar(&opts.group, "group", "", "Requesting user group")
	cmd.Flags().BoolVarP(&opts.jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

type resultJSON struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
	Realm string  `json:"realm"`
}

func writeResultsJSON(w io.Writer, results []result.Result) error {
	out := make([]resultJSON, len(results))
	for i := range results {
		r := &results[i]
		out[i] = resultJSON{ID: r.ID(), Name: r.Name(), Type: r.Type(), Score: r.Score(), Realm: r.Realm()}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeResultsTable(w io.Writer, results []result.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tREALM\tTYPE\tID\tNAME")
	for i := range results {
		r := &results[i]
		fmt.Fprintf(tw, "%.3f\t%s\t%s\t%s\t%s\n", r.Score(), r.Realm(), r.Type(), r.ID(), r.Name())
	}
	return tw.Flush()
}
