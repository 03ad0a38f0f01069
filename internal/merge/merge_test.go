package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge_DisjointNestedKeys(t *testing.T) {
	got := Trees(
		map[string]any{"a": map[string]any{"x": 1}},
		map[string]any{"a": map[string]any{"y": 2}},
	)

	want := map[string]any{"a": map[string]any{"x": 1, "y": 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Trees() mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_FirstWriterWins(t *testing.T) {
	tests := []struct {
		name   string
		layers []map[string]any
		want   map[string]any
	}{
		{
			name:   "scalar conflict keeps the earlier value",
			layers: []map[string]any{{"a": 1}, {"a": 2}},
			want:   map[string]any{"a": 1},
		},
		{
			name:   "earlier scalar beats later mapping",
			layers: []map[string]any{{"a": "flat"}, {"a": map[string]any{"x": 1}}},
			want:   map[string]any{"a": "flat"},
		},
		{
			name:   "earlier mapping beats later scalar",
			layers: []map[string]any{{"a": map[string]any{"x": 1}}, {"a": "flat"}},
			want:   map[string]any{"a": map[string]any{"x": 1}},
		},
		{
			name:   "sequences are not concatenated",
			layers: []map[string]any{{"l": []any{1, 2}}, {"l": []any{3}}},
			want:   map[string]any{"l": []any{1, 2}},
		},
		{
			name: "sparse override fills gaps",
			layers: []map[string]any{
				{"api": map[string]any{"user": "janedoe"}},
				{"api": map[string]any{"user": "johndoe", "password": "Setec Astronomy"}},
			},
			want: map[string]any{"api": map[string]any{"user": "janedoe", "password": "Setec Astronomy"}},
		},
		{
			name:   "empty layers are harmless",
			layers: []map[string]any{{}, nil, {"a": 1}},
			want:   map[string]any{"a": 1},
		},
		{
			name:   "keys are case-sensitive",
			layers: []map[string]any{{"Key": 1}, {"key": 2}},
			want:   map[string]any{"Key": 1, "key": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trees(tt.layers...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Trees() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	first := map[string]any{"a": map[string]any{"x": 1}}
	second := map[string]any{"a": map[string]any{"y": 2}, "b": map[string]any{"z": 3}}

	got := Trees(first, second)
	got["b"].(map[string]any)["z"] = 99

	if diff := cmp.Diff(map[string]any{"a": map[string]any{"x": 1}}, first); diff != "" {
		t.Errorf("first layer mutated (-want +got):\n%s", diff)
	}
	if second["b"].(map[string]any)["z"] != 3 {
		t.Errorf("second layer mutated through result: %v", second["b"])
	}
}

func TestMerge_Origins(t *testing.T) {
	_, origins := Merge(
		Layer{Name: "script.yml", Data: map[string]any{"api": map[string]any{"user": "jane"}, "timeout": 5}},
		Layer{Name: "shared.yml", Data: map[string]any{"api": map[string]any{"user": "john", "password": "pw"}, "timeout": 10, "empty": map[string]any{}}},
	)

	want := map[string]string{
		"api.user":     "script.yml",
		"api.password": "shared.yml",
		"timeout":      "script.yml",
		"empty":        "shared.yml",
	}
	if diff := cmp.Diff(want, origins); diff != "" {
		t.Errorf("origins mismatch (-want +got):\n%s", diff)
	}
}

func TestCopy(t *testing.T) {
	original := map[string]any{"l": []any{map[string]any{"k": "v"}}}
	copied := Copy(original).(map[string]any)

	copied["l"].([]any)[0].(map[string]any)["k"] = "changed"

	if original["l"].([]any)[0].(map[string]any)["k"] != "v" {
		t.Error("Copy() shared nested state with the original")
	}
}
