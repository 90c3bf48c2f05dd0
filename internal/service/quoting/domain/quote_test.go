package domain

import "testing"

func TestCheapest(t *testing.T) {
	tests := []struct {
		name   string
		quotes []Quote
		want   string
		ok     bool
	}{
		{"empty", nil, "", false},
		{"single", []Quote{{DepotName: "A", TotalCost: 10}}, "A", true},
		{"lowest wins", []Quote{{DepotName: "A", TotalCost: 10}, {DepotName: "B", TotalCost: 5}, {DepotName: "C", TotalCost: 7}}, "B", true},
		{"tie keeps first", []Quote{{DepotName: "A", TotalCost: 5}, {DepotName: "B", TotalCost: 5}}, "A", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Cheapest(tt.quotes)
			if ok != tt.ok || got.DepotName != tt.want {
				t.Fatalf("Cheapest() = %q,%v want %q,%v", got.DepotName, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNormalizePostalCode(t *testing.T) {
	if got := NormalizePostalCode("  sw1a 1aa "); got != "SW1A 1AA" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
}
