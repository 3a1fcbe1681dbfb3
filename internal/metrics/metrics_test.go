package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.DocumentsAnalyzed.Add(3)
	m.TermInstances.WithLabelValues("unigram").Add(42)
	m.AnalysisDuration.Observe(0.002)

	path := filepath.Join(t.TempDir(), "termex.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"termex_documents_analyzed_total 3",
		`termex_term_instances_total{analyzer="unigram"} 42`,
		"termex_document_analysis_seconds_count 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in textfile:\n%s", want, out)
		}
	}
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.DocumentsAnalyzed.Inc()

	families, err := b.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range families {
		if f.GetName() == "termex_documents_analyzed_total" && f.GetMetric()[0].GetCounter().GetValue() != 0 {
			t.Error("registries should not share collectors")
		}
	}
}
