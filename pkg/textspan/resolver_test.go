package textspan

import (
	"testing"
)

func TestResolve(t *testing.T) {
	poem := "The dog waits by the door.\nIts breath fogs the glass."

	tests := []struct {
		name      string
		query     string
		wantStart int
		wantEnd   int
		wantOk    bool
	}{
		{
			name:      "exact match",
			query:     "waits by the door",
			wantStart: 8,
			wantEnd:   25,
			wantOk:    true,
		},
		{
			name:      "case-insensitive fallback",
			query:     "the DOG",
			wantStart: 0,
			wantEnd:   7,
			wantOk:    true,
		},
		{
			name:      "leftmost occurrence wins",
			query:     "the",
			wantStart: 0,
			wantEnd:   3,
			wantOk:    true,
		},
		{
			name:   "not found",
			query:  "cat",
			wantOk: false,
		},
		{
			name:   "empty query",
			query:  "",
			wantOk: false,
		},
		{
			name:      "spans a line break",
			query:     "door.\nIts breath",
			wantStart: 20,
			wantEnd:   36,
			wantOk:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok := Resolve(poem, tt.query)

			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if !tt.wantOk {
				return
			}
			if span.Start != tt.wantStart || span.End != tt.wantEnd {
				t.Errorf("span = [%d, %d), want [%d, %d)", span.Start, span.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestResolveExactBeatsInsensitive(t *testing.T) {
	// "Door" appears case-shifted before the exact lowercase hit; the exact
	// match must still win.
	text := "Door first, then door again"

	span, ok := Resolve(text, "door")
	if !ok {
		t.Fatal("expected a match")
	}
	if span.Start != 17 {
		t.Errorf("start = %d, want 17 (exact match preferred over earlier case-insensitive hit)", span.Start)
	}
}
