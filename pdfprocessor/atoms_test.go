package pdfprocessor

import (
	"strings"
	"testing"
)

func TestAssembleText(t *testing.T) {
	tests := []struct {
		name        string
		pages       []string
		wantMarkers []string
		skipMarkers []string
	}{
		{
			name:        "all pages yield text",
			pages:       []string{"first", "second", "third"},
			wantMarkers: []string{"--- [Page 1] ---", "--- [Page 2] ---", "--- [Page 3] ---"},
		},
		{
			name:        "empty middle page contributes no marker",
			pages:       []string{"first", "", "third"},
			wantMarkers: []string{"--- [Page 1] ---", "--- [Page 3] ---"},
			skipMarkers: []string{"--- [Page 2] ---"},
		},
		{
			name:        "whitespace-only page is skipped",
			pages:       []string{"first", "  \n\t ", "third"},
			wantMarkers: []string{"--- [Page 1] ---", "--- [Page 3] ---"},
			skipMarkers: []string{"--- [Page 2] ---"},
		},
		{
			name:        "page numbers are not renumbered after a gap",
			pages:       []string{"", "", "only"},
			wantMarkers: []string{"--- [Page 3] ---"},
			skipMarkers: []string{"--- [Page 1] ---", "--- [Page 2] ---"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assembleText(tt.pages)
			for _, m := range tt.wantMarkers {
				if !strings.Contains(got, m) {
					t.Errorf("text missing marker %q:\n%s", m, got)
				}
			}
			for _, m := range tt.skipMarkers {
				if strings.Contains(got, m) {
					t.Errorf("text contains unexpected marker %q:\n%s", m, got)
				}
			}
		})
	}
}

func TestAssembleTextEmptyInput(t *testing.T) {
	if got := assembleText(nil); got != "" {
		t.Errorf("assembleText(nil) = %q, want empty", got)
	}
	if got := assembleText([]string{"", ""}); got != "" {
		t.Errorf("assembleText(all empty) = %q, want empty", got)
	}
}

func TestAssembleTextLengthIsSumOfContributions(t *testing.T) {
	pages := []string{"alpha", "", "gamma"}
	got := assembleText(pages)

	want := 0
	for i, p := range pages {
		if p == "" {
			continue
		}
		want += len("\n\n") + len(PageMarker(i+1)) + len("\n\n") + len(p)
	}
	if len(got) != want {
		t.Errorf("assembled length = %d, want %d", len(got), want)
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("a", 1500) + strings.Repeat("z", 1500)

	tests := []struct {
		name string
		text string
		want func(string) bool
	}{
		{
			name: "short text unchanged",
			text: "short document",
			want: func(got string) bool { return got == "short document" },
		},
		{
			name: "long text elided",
			text: long,
			want: func(got string) bool {
				return strings.HasPrefix(got, strings.Repeat("a", 1000)) &&
					strings.HasSuffix(got, strings.Repeat("z", 1000)) &&
					strings.Contains(got, "middle content omitted")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.text, 2000, 1000); !tt.want(got) {
				t.Errorf("Preview(%q...) = %q", tt.text[:min(20, len(tt.text))], got[:min(60, len(got))])
			}
		})
	}
}
