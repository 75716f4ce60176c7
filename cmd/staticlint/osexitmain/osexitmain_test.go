package osexitmain

import (
	"go/types"
	"testing"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
)

func TestRun_SkipsNonMainPackage(t *testing.T) {
	pass := &analysis.Pass{Pkg: types.NewPackage("example.com/lib", "lib")}

	res, err := run(pass)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res != nil {
		t.Fatalf("result = %v, want nil", res)
	}
}

func TestRun_RejectsWrongInspectorType(t *testing.T) {
	pass := &analysis.Pass{
		Pkg: types.NewPackage("example.com/cmd", "main"),
		ResultOf: map[*analysis.Analyzer]any{
			inspect.Analyzer: "not an inspector",
		},
	}

	if _, err := run(pass); err == nil {
		t.Fatal("expected error for wrong inspector result type")
	}
}

func TestAnalyzerMetadata(t *testing.T) {
	if Analyzer.Name != "osexitmain" {
		t.Errorf("name = %q", Analyzer.Name)
	}
	if len(Analyzer.Requires) != 1 || Analyzer.Requires[0] != inspect.Analyzer {
		t.Errorf("analyzer must require inspect.Analyzer")
	}
}
