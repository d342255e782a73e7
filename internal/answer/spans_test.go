package answer

import (
	"reflect"
	"testing"
)

func TestSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []Span
	}{
		{"plain", []Span{{Text: "plain"}}},
		{"a **b** c", []Span{{Text: "a "}, {Text: "b", Bold: true}, {Text: " c"}}},
		{"**Skills**: Go", []Span{{Text: "Skills", Bold: true}, {Text: ": Go"}}},
		{"open ** only", []Span{{Text: "open ** only"}}},
		{"**a** and **b**", []Span{{Text: "a", Bold: true}, {Text: " and "}, {Text: "b", Bold: true}}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Spans(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Spans(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestStripEmphasis(t *testing.T) {
	t.Parallel()

	if got := StripEmphasis("**Education**: BSc"); got != "Education: BSc" {
		t.Fatalf("got %q", got)
	}
}
