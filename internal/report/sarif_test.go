package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/proftool/proftool/internal/engine"
	"github.com/proftool/proftool/internal/types"
)

func TestWriteSARIF_RulesAndProperties(t *testing.T) {
	res := engine.Result{
		Totals: types.Counters{Profiles: 2, Seccomp: 1, Caps: 2},
		Warnings: []types.Warning{
			{Path: "a.profile", Kind: types.WarnMultipleCaps, Directive: types.Caps, Message: "Warning: multiple caps in a.profile"},
			{Path: "a.profile", Kind: types.WarnMissing, Directive: types.Seccomp, Message: "No seccomp found in a.profile"},
			{Path: "b.profile", Kind: types.WarnMissing, Directive: types.Seccomp, Message: "No seccomp found in b.profile"},
		},
	}
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, res, "1.2.3"); err != nil {
		t.Fatalf("WriteSARIF: %v", err)
	}
	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Properties map[string]any `json:"properties"`
			Tool       struct {
				Driver struct {
					Name    string `json:"name"`
					Version string `json:"version"`
					Rules   []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				RuleIndex int    `json:"ruleIndex"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, buf.String())
	}
	if doc.Version != "2.1.0" || len(doc.Runs) != 1 {
		t.Fatalf("unexpected envelope: %+v", doc)
	}
	run := doc.Runs[0]
	if run.Tool.Driver.Name != "proftool" || run.Tool.Driver.Version != "1.2.3" {
		t.Fatalf("unexpected driver: %+v", run.Tool.Driver)
	}
	if len(run.Tool.Driver.Rules) != 2 {
		t.Fatalf("expected 2 distinct rules, got %d", len(run.Tool.Driver.Rules))
	}
	if len(run.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(run.Results))
	}
	if run.Results[2].RuleID != "missing-seccomp" || run.Results[2].RuleIndex != 1 {
		t.Fatalf("unexpected rule linkage: %+v", run.Results[2])
	}
	if run.Results[0].Level != "warning" || run.Results[1].Level != "note" {
		t.Fatalf("unexpected levels: %+v", run.Results)
	}
	if run.Results[2].Locations[0].PhysicalLocation.ArtifactLocation.URI != "b.profile" {
		t.Fatalf("unexpected location: %+v", run.Results[2].Locations)
	}
	totals, ok := run.Properties["totals"].(map[string]any)
	if !ok || totals["profiles"].(float64) != 2 {
		t.Fatalf("expected totals in properties, got: %#v", run.Properties)
	}
}

func TestWriteSARIF_NoWarnings(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, engine.Result{}, "dev"); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	runs := doc["runs"].([]any)
	results := runs[0].(map[string]any)["results"].([]any)
	if len(results) != 0 {
		t.Fatalf("expected empty results array, got %v", results)
	}
}

func TestWriteJSON(t *testing.T) {
	res := engine.Result{
		Totals: types.Counters{Profiles: 1, AppArmor: 1},
		Files:  []types.FileResult{{Path: "a.profile", Counters: types.Counters{Profiles: 1, AppArmor: 1}, Digest: "0123456789abcdef"}},
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatal(err)
	}
	var back engine.Result
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.Totals.AppArmor != 1 || len(back.Files) != 1 || back.Files[0].Digest != "0123456789abcdef" {
		t.Fatalf("unexpected decode: %+v", back)
	}
}
