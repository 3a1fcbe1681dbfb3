package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"termex/internal/domain"
	"termex/internal/usecase"
)

var (
	termsDoc  string
	termsTopN int
	termsJSON bool
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Show the most frequent terms",
	Long: `Show the most frequent terms of the whole corpus, or of a single
document with --doc.

Examples:
  termex terms -n 20
  termex terms --doc notes/a.txt --json`,
	Args: cobra.NoArgs,
	RunE: runTerms,
}

func init() {
	rootCmd.AddCommand(termsCmd)
	termsCmd.Flags().StringVar(&termsDoc, "doc", "", "document path (default: whole corpus)")
	termsCmd.Flags().IntVarP(&termsTopN, "top", "n", 10, "number of terms to show (0 for all)")
	termsCmd.Flags().BoolVar(&termsJSON, "json", false, "output as JSON")
}

type termsOutput struct {
	Document   string             `json:"document,omitempty"`
	TotalCount int                `json:"total_count"`
	Distinct   int                `json:"distinct"`
	Terms      []domain.TermCount `json:"terms"`
}

func runTerms(cmd *cobra.Command, args []string) error {
	st, err := openIndex()
	if err != nil {
		return err
	}
	defer st.Close()

	var tv *domain.TermVector
	out := termsOutput{}
	if termsDoc != "" {
		path, err := resolveDocPath(termsDoc)
		if err != nil {
			return fmt.Errorf("invalid document path: %w", err)
		}
		doc, err := usecase.NewLookupUseCase(st).Load(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", termsDoc, err)
		}
		tv = doc.Analysis.TermVector
		out.Document = doc.Path
	} else {
		tv, err = st.GetCorpusVector()
		if err != nil {
			return fmt.Errorf("failed to load corpus vector: %w", err)
		}
	}

	out.TotalCount = tv.TotalCount
	out.Distinct = tv.Len()
	out.Terms = tv.Top(termsTopN)

	if termsJSON {
		output, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(out.Terms) == 0 {
		fmt.Println("No terms found.")
		return nil
	}
	scope := "corpus"
	if out.Document != "" {
		scope = out.Document
	}
	fmt.Printf("%d term instances, %d distinct terms in %s\n\n", out.TotalCount, out.Distinct, scope)
	for i, tc := range out.Terms {
		fmt.Printf("%4d. %-40s %d\n", i+1, tc.Term, tc.Count)
	}
	return nil
}
