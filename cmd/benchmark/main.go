package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"termex/config"
	"termex/internal/adapter/analyzer"
	"termex/internal/adapter/fs"
	"termex/internal/domain"
	"termex/internal/port"
	"termex/internal/usecase"
)

type run struct {
	name     string
	analyzer port.DocAnalyzer
	ngram    *analyzer.NgramAnalyzer
}

func main() {
	dir := flag.String("dir", ".", "Corpus directory")
	order := flag.Int("order", 3, "N-gram order")
	flag.Parse()

	if *order < 1 {
		fmt.Println("Usage: go run cmd/benchmark/main.go -dir ./corpus -order 3")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	tokenizer, err := analyzer.NewTokenizer(cfg.Corpus.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	files, err := fs.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes).Walk(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking %s: %v\n", *dir, err)
		os.Exit(1)
	}

	var corpus [][]domain.Token
	totalTokens := 0
	for _, f := range files {
		content, err := fs.ReadFile(f.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", f.Path, err)
			continue
		}
		tokens := tokenizer.Tokenize(content)
		corpus = append(corpus, tokens)
		totalTokens += len(tokens)
	}
	if len(corpus) == 0 {
		fmt.Println("No documents found.")
		os.Exit(1)
	}

	runs := []run{{name: "unigram", analyzer: analyzer.NewUnigramAnalyzer()}}
	variants := []*analyzer.NgramAnalyzer{
		analyzer.NewNgramAnalyzer(*order, false, false),
		analyzer.NewNgramAnalyzer(*order, false, true),
	}
	if cfg.Corpus.Format == analyzer.FormatTagged {
		variants = append(variants, analyzer.NewNgramAnalyzer(*order, true, true))
	}
	for _, v := range variants {
		runs = append(runs, run{name: v.Name(), analyzer: v, ngram: v})
	}

	fmt.Println("TERM EXTRACTION BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Documents: %d\n", len(corpus))
	fmt.Printf("Tokens:    %d\n", totalTokens)
	fmt.Printf("Format:    %s\n", cfg.Corpus.Format)
	fmt.Println()

	fmt.Printf("%-40s %10s %10s %12s\n", "ANALYZER", "INSTANCES", "TERMS", "TIME")
	fmt.Println(strings.Repeat("-", 70))
	for _, r := range runs {
		agg := usecase.NewAggregator()
		instances := 0
		start := time.Now()
		for _, tokens := range corpus {
			doc := &domain.Document{Tokens: tokens}
			if err := usecase.AnalyzeDocument(r.analyzer, doc); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.name, err)
				os.Exit(1)
			}
			instances += len(doc.Analysis.TermInstances)
			agg.AddDocument(doc)
		}
		elapsed := time.Since(start)
		fmt.Printf("%-40s %10d %10d %12s\n", r.name, instances, agg.Vector().Len(), elapsed.Round(time.Microsecond))
	}

	fmt.Println()
	fmt.Println("CANDIDATES BY LENGTH")
	fmt.Println(strings.Repeat("=", 70))
	for _, r := range runs {
		if r.ngram == nil {
			continue
		}
		stats := candidateTotals(r.ngram, corpus)
		fmt.Printf("%s\n", r.name)
		fmt.Printf("  %3s %12s %12s %12s %12s\n", "N", "CONSIDERED", "STOPWORD", "POS/NER", "EMITTED")
		for k := range stats.Considered {
			fmt.Printf("  %3d %12d %12d %12d %12d\n", k+1,
				stats.Considered[k], stats.StopwordRejected[k], stats.POSNERRejected[k], stats.Emitted[k])
		}
		fmt.Println()
	}
}

func candidateTotals(a *analyzer.NgramAnalyzer, corpus [][]domain.Token) analyzer.CandidateStats {
	total := analyzer.CandidateStats{
		Considered:       make([]int, a.Order),
		StopwordRejected: make([]int, a.Order),
		POSNERRejected:   make([]int, a.Order),
		Emitted:          make([]int, a.Order),
	}
	for _, tokens := range corpus {
		_, stats, err := a.AnalyzeWithStats(tokens)
		if err != nil {
			continue
		}
		for k := 0; k < a.Order; k++ {
			total.Considered[k] += stats.Considered[k]
			total.StopwordRejected[k] += stats.StopwordRejected[k]
			total.POSNERRejected[k] += stats.POSNERRejected[k]
			total.Emitted[k] += stats.Emitted[k]
		}
	}
	return total
}
