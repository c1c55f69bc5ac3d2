package segment

import "testing"

func TestLocate(t *testing.T) {
	tests := []struct {
		name         string
		target       float64
		candidates   []float64
		maxDeviation float64
		want         float64
	}{
		{
			name:         "closer earlier candidate wins",
			target:       12.0,
			candidates:   []float64{10.0, 50.0},
			maxDeviation: 5.0,
			want:         10.0,
		},
		{
			name:         "no candidates returns target",
			target:       30.0,
			candidates:   nil,
			maxDeviation: 60.0,
			want:         30.0,
		},
		{
			name:         "exact tie prefers earlier",
			target:       12.0,
			candidates:   []float64{10.0, 14.0},
			maxDeviation: 5.0,
			want:         10.0,
		},
		{
			name:         "later candidate when strictly closer",
			target:       13.0,
			candidates:   []float64{10.0, 14.0},
			maxDeviation: 5.0,
			want:         14.0,
		},
		{
			name:         "all candidates beyond deviation",
			target:       30.0,
			candidates:   []float64{10.0, 50.0},
			maxDeviation: 5.0,
			want:         30.0,
		},
		{
			name:         "target matches candidate exactly",
			target:       50.0,
			candidates:   []float64{10.0, 50.0, 90.0},
			maxDeviation: 5.0,
			want:         50.0,
		},
		{
			name:         "target before all candidates",
			target:       3.0,
			candidates:   []float64{10.0, 50.0},
			maxDeviation: 60.0,
			want:         10.0,
		},
		{
			name:         "target after all candidates",
			target:       95.0,
			candidates:   []float64{10.0, 50.0},
			maxDeviation: 60.0,
			want:         50.0,
		},
		{
			name:         "zero deviation only accepts exact hits",
			target:       12.0,
			candidates:   []float64{10.0, 12.0, 14.0},
			maxDeviation: 0,
			want:         12.0,
		},
		{
			name:         "zero deviation rejects near misses",
			target:       11.0,
			candidates:   []float64{10.0, 14.0},
			maxDeviation: 0,
			want:         11.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Locate(tc.target, tc.candidates, tc.maxDeviation)
			if got != tc.want {
				t.Fatalf("Locate(%v, %v, %v) = %v, want %v", tc.target, tc.candidates, tc.maxDeviation, got, tc.want)
			}
		})
	}
}
