package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/tilelay/pkg/layout"
)

func TestFormatIDs(t *testing.T) {
	tests := []struct {
		ids  []int
		want string
	}{
		{nil, ""},
		{[]int{7}, "7"},
		{[]int{1, 2, 3}, "1,2,3"},
		{[]int{1, 2, 3, 4, 5, 6, 7, 8}, "1,2,3,4,5,6,7,8"},
		{[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, "1,2,3,4,5,6,7,8,… (+2)"},
	}
	for _, tt := range tests {
		if got := formatIDs(tt.ids); got != tt.want {
			t.Errorf("formatIDs(%v) = %q, want %q", tt.ids, got, tt.want)
		}
	}
}

func TestRenderTileTable(t *testing.T) {
	var counts layout.TileCounts
	data := `[
		{"signature": "cut", "count": 1, "edgeLengths": "50,20,50,20", "ids": [4], "isCut": true, "type": 0},
		{"signature": "full", "count": 3, "edgeLengths": "50,50,50,50", "ids": [1, 2, 3], "isCut": false, "type": 0}
	]`
	if err := json.Unmarshal([]byte(data), &counts); err != nil {
		t.Fatal(err)
	}

	out := renderTileTable(&counts)

	full := strings.Index(out, "50,50,50,50")
	cut := strings.Index(out, "50,20,50,20")
	if full < 0 || cut < 0 {
		t.Fatalf("table is missing a row:\n%s", out)
	}
	if full > cut {
		t.Errorf("uncut shapes should be listed first:\n%s", out)
	}
	for _, want := range []string{"Edges (mm)", "1,2,3", "full", "cut"} {
		if !strings.Contains(out, want) {
			t.Errorf("table does not contain %q:\n%s", want, out)
		}
	}
}
