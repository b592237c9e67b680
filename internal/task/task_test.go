package task

import (
	"errors"
	"testing"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"high", PriorityHigh, false},
		{"medium", PriorityMedium, false},
		{"low", PriorityLow, false},
		{"HIGH", PriorityHigh, false},
		{"  low  ", PriorityLow, false},
		{"urgent", "", true},
		{"", "", true},
		{"1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPriority) {
					t.Errorf("ParsePriority(%q) err = %v, want ErrInvalidPriority", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePriority(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePriority(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPriorityRankOrdering(t *testing.T) {
	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Errorf("rank order broken: high=%d medium=%d low=%d",
			PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
}

func TestTimestampJSON(t *testing.T) {
	var ts Timestamp
	if err := ts.UnmarshalJSON([]byte(`"2025-03-14 09:26:53"`)); err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}
	if got := ts.String(); got != "2025-03-14 09:26:53" {
		t.Errorf("String() = %q, want %q", got, "2025-03-14 09:26:53")
	}

	data, err := ts.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(data) != `"2025-03-14 09:26:53"` {
		t.Errorf("MarshalJSON = %s", data)
	}

	if err := ts.UnmarshalJSON([]byte(`"March 14"`)); err == nil {
		t.Error("UnmarshalJSON accepted a malformed timestamp")
	}
}
