package layout

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func planFixture(t *testing.T) *PlanResult {
	t.Helper()
	res, err := Plan(
		[]LabelContent{Fielded(Field{Name: "Species", Value: "Eupachydiscus sp."})},
		testStyle(),
		PageGrid{Spacing: 9, PageWidth: 612, PageHeight: 792},
		testOpts(),
	)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	return res
}

func TestWritePlanJSON(t *testing.T) {
	res := planFixture(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	if err := WritePlanJSON(res, path); err != nil {
		t.Fatalf("WritePlanJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read plan: %v", err)
	}
	var decoded PlanResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if len(decoded.Labels) != 1 || decoded.Labels[0].Layout == nil {
		t.Fatalf("decoded labels = %+v", decoded.Labels)
	}
	if decoded.Cols != 3 || decoded.Rows != 5 || decoded.Pages != 1 {
		t.Fatalf("decoded grid = %dx%d, %d pages", decoded.Cols, decoded.Rows, decoded.Pages)
	}
	if decoded.Labels[0].Layout.Instructions[0].Text != "Species:" {
		t.Fatalf("instructions = %+v", decoded.Labels[0].Layout.Instructions)
	}
}

func TestEncodePlanJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePlanJSON(planFixture(t), &buf); err != nil {
		t.Fatalf("EncodePlanJSON: %v", err)
	}
	var decoded PlanResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if len(decoded.Placements) != 1 || decoded.Placements[0] != (Placement{}) {
		t.Fatalf("placements = %+v", decoded.Placements)
	}
}

// Per-label errors travel as strings in the JSON form.
func TestPlanJSONCarriesLabelErrors(t *testing.T) {
	style := testStyle()
	style.Overrides = map[string]FieldStylePatch{
		"Bad": {Name: TextStylePatch{Family: ptr(FontFamily(42))}},
	}
	res, err := Plan(
		[]LabelContent{Fielded(Field{Name: "Bad", Value: "x"})},
		style,
		PageGrid{Spacing: 9, PageWidth: 612, PageHeight: 792},
		testOpts(),
	)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodePlanJSON(res, &buf); err != nil {
		t.Fatalf("EncodePlanJSON: %v", err)
	}
	var decoded PlanResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if decoded.Labels[0].Error == "" || decoded.Labels[0].Layout != nil {
		t.Fatalf("label = %+v", decoded.Labels[0])
	}
}
