package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"termex/internal/adapter/analyzer"
	"termex/internal/domain"
	"termex/internal/usecase"
)

var (
	lookupDoc       string
	lookupToken     int
	lookupChar      int
	lookupJSON      bool
	lookupVerify    bool
	lookupReanalyze bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Find the term instances at a token or character position",
	Long: `Resolve a token index or byte offset of an analyzed document against its
position indexes.

With --token, lists the instances starting at and covering that token.
With --char, lists the instances whose span starts or ends at that offset.

Examples:
  termex lookup --doc notes/a.txt --token 3
  termex lookup --doc notes/a.txt --char 17 --json
  termex lookup --doc notes/a.txt --token 0 --reanalyze --verify`,
	Args: cobra.NoArgs,
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringVar(&lookupDoc, "doc", "", "document path (required)")
	lookupCmd.Flags().IntVar(&lookupToken, "token", -1, "token index")
	lookupCmd.Flags().IntVar(&lookupChar, "char", -1, "byte offset")
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output as JSON")
	lookupCmd.Flags().BoolVar(&lookupVerify, "verify", false, "check the position indexes for consistency")
	lookupCmd.Flags().BoolVar(&lookupReanalyze, "reanalyze", false, "re-analyze the stored tokens with the current configuration")
	lookupCmd.MarkFlagRequired("doc")
	lookupCmd.MarkFlagsOneRequired("token", "char")
	lookupCmd.MarkFlagsMutuallyExclusive("token", "char")
}

func runLookup(cmd *cobra.Command, args []string) error {
	st, err := openIndex()
	if err != nil {
		return err
	}
	defer st.Close()

	path, err := resolveDocPath(lookupDoc)
	if err != nil {
		return fmt.Errorf("invalid document path: %w", err)
	}

	lookupUC := usecase.NewLookupUseCase(st)
	doc, err := lookupUC.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", lookupDoc, err)
	}

	if lookupReanalyze {
		an, err := analyzer.NewAnalyzer(GetConfig().Analysis)
		if err != nil {
			return err
		}
		if err := usecase.AnalyzeDocument(an, doc); err != nil {
			return err
		}
	}

	if lookupVerify {
		if err := doc.Analysis.Verify(doc.Tokens); err != nil {
			return fmt.Errorf("index verification failed: %w", err)
		}
	}

	var result any
	if cmd.Flags().Changed("token") {
		tl, err := lookupUC.ByToken(doc, lookupToken)
		if err != nil {
			return err
		}
		result = tl
		if !lookupJSON {
			fmt.Printf("Token %d: %q [%d,%d)\n", lookupToken, tl.Token.Text, tl.Token.StartChar(), tl.Token.EndChar())
			printInstances("Starting here", tl.StartingAt, doc.Tokens)
			printInstances("Covering", tl.Covering, doc.Tokens)
		}
	} else {
		cl := lookupUC.ByChar(doc, lookupChar)
		result = cl
		if !lookupJSON {
			if cl.TokenIndex >= 0 {
				tok := doc.Tokens[cl.TokenIndex]
				fmt.Printf("Offset %d: inside token %d %q\n", lookupChar, cl.TokenIndex, tok.Text)
			} else {
				fmt.Printf("Offset %d: between tokens\n", lookupChar)
			}
			printInstances("Starting here", cl.StartingAt, doc.Tokens)
			printInstances("Ending here", cl.EndingAt, doc.Tokens)
		}
	}

	if lookupJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
	} else if lookupVerify {
		fmt.Println("\nIndexes verified.")
	}
	return nil
}

func printInstances(label string, instances []*domain.TermInstance, tokens []domain.Token) {
	fmt.Printf("  %s (%d):\n", label, len(instances))
	for _, ti := range instances {
		words := make([]string, 0, ti.Len())
		for _, idx := range ti.TokenIndices {
			words = append(words, tokens[idx].Text)
		}
		fmt.Printf("    %-30s tokens %d-%d  %q\n", ti.TermName, ti.First(), ti.Last(), strings.Join(words, " "))
	}
}
