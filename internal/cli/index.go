package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eclipse-sw360/sw360-search/internal/db"
	dombatch "github.com/eclipse-sw360/sw360-search/internal/domain/batch"
)

// NewIndexCmd creates the 'index' command that loads a JSON document file into a realm.
func NewIndexCmd(g *globalOptions) *cobra.Command {
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "index <realm> <file.json|->",
		Short: "Load documents into the users or catalog realm",
		Long: `Load a JSON array of documents into a realm, creating missing indexes first.
Each document has an id, a type and a map of string fields.`,
		Example: `  sw360ctl index catalog components.json
  cat users.json | sw360ctl index users -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := readDocuments(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}

			a, err := g.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ix, err := a.Indexer(args[0])
			if err != nil {
				return err
			}
			if err := a.EnsureIndexes(cmd.Context()); err != nil {
				return err
			}
			ix = ix.WithChunkSize(chunkSize)

			results := ix.Index(cmd.Context(), docs)
			return reportBatch(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Documents per store write (default 500)")
	return cmd
}

func readDocuments(stdin io.Reader, path string) ([]db.Document, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var docs []db.Document
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return docs, nil
}

func reportBatch(w io.Writer, results []dombatch.Result) error {
	for _, r := range results {
		if r.Status() == dombatch.StatusError {
			fmt.Fprintf(w, "  ✗ %s: %v\n", r.ID(), r.Err())
		}
	}
	sum := dombatch.Summarize(results)
	fmt.Fprintf(w, "Indexed %d of %d documents.\n", sum.OK, len(results))
	if sum.Failed > 0 {
		return fmt.Errorf("%d documents failed: %w", sum.Failed, sum.FirstErr)
	}
	return nil
}
