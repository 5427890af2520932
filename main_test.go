package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lithotype/lithotype/layout"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadContents(t *testing.T) {
	path := writeFile(t, "content.json", `[
	  {"fields": [{"name": "Species", "value": "Eupachydiscus sp."}]},
	  {"text": "shelf spare"}
	]`)

	contents, err := loadContents(path, "")
	if err != nil {
		t.Fatalf("loadContents: %v", err)
	}
	if len(contents) != 2 {
		t.Fatalf("content count = %d, want 2", len(contents))
	}
	if contents[0].Kind != layout.KindFields || contents[0].Fields[0].Name != "Species" {
		t.Fatalf("first content = %+v", contents[0])
	}
	if contents[1].Kind != layout.KindFreeText || contents[1].Text != "shelf spare" {
		t.Fatalf("second content = %+v", contents[1])
	}
}

func TestLoadContentsRejectsMixedEntry(t *testing.T) {
	path := writeFile(t, "content.json", `[{"text": "x", "fields": [{"name": "A"}]}]`)
	if _, err := loadContents(path, ""); err == nil || !strings.Contains(err.Error(), "mixes") {
		t.Fatalf("error = %v", err)
	}
}

func TestLoadContentsWithData(t *testing.T) {
	content := writeFile(t, "content.json", `[{"fields": [{"name": "Site", "value": "${site}"}]}]`)
	data := writeFile(t, "data.json", `[{"site": "Lyme Regis"}, {"site": "Whitby"}]`)

	contents, err := loadContents(content, data)
	if err != nil {
		t.Fatalf("loadContents: %v", err)
	}
	if len(contents) != 2 {
		t.Fatalf("content count = %d, want 2", len(contents))
	}
	if contents[1].Fields[0].Value != "Whitby" {
		t.Fatalf("second value = %q", contents[1].Fields[0].Value)
	}
}

func TestLoadContentsDataNeedsSingleTemplate(t *testing.T) {
	content := writeFile(t, "content.json", `[{"text": "a"}, {"text": "b"}]`)
	data := writeFile(t, "data.json", `[{}]`)
	if _, err := loadContents(content, data); err == nil {
		t.Fatal("expected error for multiple templates with --data")
	}
}

func TestParseGrid(t *testing.T) {
	grid, err := parseGrid("8.5in", "11in", "0.125in")
	if err != nil {
		t.Fatalf("parseGrid: %v", err)
	}
	if grid.PageWidth != 612 || grid.PageHeight != 792 || grid.Spacing != 9 {
		t.Fatalf("grid = %+v", grid)
	}

	if _, err := parseGrid("wide", "11in", "0"); err == nil {
		t.Fatal("expected error for bad page width")
	}
}

func TestRunWritesPlan(t *testing.T) {
	style := writeFile(t, "style.lbl", `
label "test" {
  size: 2in x 1in
}
`)
	content := writeFile(t, "content.json", `[{"text": "hello"}]`)
	out := filepath.Join(t.TempDir(), "plan.json")

	if err := run(style, content, "", out, "8.5in", "11in", "0.125in", nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read plan: %v", err)
	}
	var plan layout.PlanResult
	if err := json.Unmarshal(raw, &plan); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if len(plan.Labels) != 1 || plan.Labels[0].Layout == nil {
		t.Fatalf("plan labels = %+v", plan.Labels)
	}
	if plan.Grid.LabelWidth != 144 || plan.Grid.LabelHeight != 72 {
		t.Fatalf("grid label = %gx%g", plan.Grid.LabelWidth, plan.Grid.LabelHeight)
	}
}
