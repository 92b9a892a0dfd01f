package archive

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"single", "cardiology", []string{"cardiology"}},
		{"multiple", "cardiology,trial,stats", []string{"cardiology", "trial", "stats"}},
		{"padded", "  cardiology , trial  ", []string{"cardiology", "trial"}},
		{"blank entries dropped", "a,,b, ,c", []string{"a", "b", "c"}},
		{"trailing comma", "a,b,", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMergeTags(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		typed    string
		want     []string
	}{
		{"both empty", nil, "", nil},
		{"selected only", []string{"a", "b"}, "", []string{"a", "b"}},
		{"typed only", nil, "x, y", []string{"x", "y"}},
		{"overlap deduplicated", []string{"A", "b"}, "b, C", []string{"A", "b", "C"}},
		{"case sensitive", []string{"Cardio"}, "cardio", []string{"Cardio", "cardio"}},
		{"duplicate selection", []string{"a", "a"}, "", []string{"a"}},
		{"selected order wins", []string{"b"}, "a, b", []string{"b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeTags(tt.selected, tt.typed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergeTags(%v, %q) = %v, want %v", tt.selected, tt.typed, got, tt.want)
			}
		})
	}
}

func TestJoinMerged(t *testing.T) {
	got := JoinMerged([]string{"a"}, "b, a")
	if got != "a,b" {
		t.Errorf("JoinMerged() = %q, want %q", got, "a,b")
	}
}
