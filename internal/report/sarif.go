package report

import (
	"encoding/json"
	"io"

	"github.com/proftool/proftool/internal/engine"
	"github.com/proftool/proftool/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	RuleIndex int          `json:"ruleIndex"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt `json:"artifactLocation"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

func ruleID(w types.Warning) string {
	if w.Kind == types.WarnMultipleCaps {
		return "multiple-caps"
	}
	return "missing-" + string(w.Directive)
}

func ruleText(w types.Warning) string {
	if w.Kind == types.WarnMultipleCaps {
		return "caps declared more than once"
	}
	return "profile lacks " + w.Directive.Label()
}

func kindToLevel(k types.WarningKind) string {
	if k == types.WarnMultipleCaps {
		return "warning"
	}
	return "note"
}

// WriteSARIF writes the run's warnings as SARIF 2.1.0, with the corrected
// totals attached as run properties.
func WriteSARIF(w io.Writer, res engine.Result, version string) error {
	run := sarifRun{
		Tool:       sarifTool{Driver: sarifDriver{Name: "proftool", Version: version}},
		Results:    []sarifResult{},
		Properties: map[string]any{"totals": res.Totals},
	}
	index := map[string]int{}
	for _, warn := range res.Warnings {
		id := ruleID(warn)
		idx, ok := index[id]
		if !ok {
			idx = len(run.Tool.Driver.Rules)
			index[id] = idx
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
				ID:               id,
				ShortDescription: sarifMessage{Text: ruleText(warn)},
			})
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:    id,
			RuleIndex: idx,
			Level:     kindToLevel(warn.Kind),
			Message:   sarifMessage{Text: warn.Message},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{ArtifactLocation: sarifArt{URI: warn.Path}},
			}},
		})
	}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteJSON writes the full result (totals, per-file detail, warnings).
func WriteJSON(w io.Writer, res engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
