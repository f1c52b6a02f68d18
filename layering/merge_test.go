package layering

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMergeLayersFromFixture(t *testing.T) {
	fx := loadLayeringFixture(t, "layering_merge.json")

	for _, tc := range fx.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			got := MergeLayers(tc.Layers...)
			if !reflect.DeepEqual(tc.Expect, got) {
				t.Errorf("merged snapshot mismatch:\nwant: %#v\n got: %#v", tc.Expect, got)
			}
		})
	}
}

func TestMergeLayersZeroInput(t *testing.T) {
	got := MergeLayers()
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty map, got %#v", got)
	}
}

func TestMergeLayersDoesNotAlias(t *testing.T) {
	weak := map[string]any{"font": map[string]any{"size": 12}}
	strong := map[string]any{"color": []any{1.0, 1.0, 1.0}}

	merged := MergeLayers(strong, weak)
	merged["font"].(map[string]any)["size"] = 99
	merged["color"].([]any)[0] = 0.0

	if weak["font"].(map[string]any)["size"] != 12 {
		t.Fatalf("expected weak layer untouched, got %v", weak)
	}
	if strong["color"].([]any)[0] != 1.0 {
		t.Fatalf("expected strong layer untouched, got %v", strong)
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten(map[string]any{
		"text": "x",
		"font": map[string]any{"size": 12, "style": map[string]any{"bold": true}},
		"tags": map[string]any{},
	}, "_")
	want := map[string]any{
		"text":            "x",
		"font_size":       12,
		"font_style_bold": true,
		"tags":            map[string]any{},
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("flatten mismatch:\nwant: %#v\n got: %#v", want, got)
	}
}

type layeringFixture struct {
	Description string        `json:"description"`
	Cases       []layeringCase `json:"cases"`
}

type layeringCase struct {
	Name   string           `json:"name"`
	Layers []map[string]any `json:"layers"`
	Expect map[string]any   `json:"expect"`
}

func loadLayeringFixture(t *testing.T, name string) layeringFixture {
	t.Helper()
	path := filepath.Join("..", "testdata", name)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read layering fixture %q: %v", name, err)
	}
	var fx layeringFixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		t.Fatalf("failed to unmarshal layering fixture %q: %v", name, err)
	}
	return fx
}
