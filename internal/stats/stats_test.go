package stats

import (
	"errors"
	"math"
	"strings"
	"testing"

	"h3vector/internal/grid"
	"h3vector/internal/grid/gridtest"
)

func TestAreaKm2(t *testing.T) {
	tests := []struct {
		resolution int
		want       float64
	}{
		{0, 4250546.8477},
		{1, 607220.9782},
		{5, 252.9014},
		{8, 0.7373},
		{10, 0.0150},
		{11, 0.0150 / 7},
		{13, 0.0150 / 343},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := AreaKm2(tt.resolution); math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("AreaKm2(%d) = %v, want %v", tt.resolution, got, tt.want)
		}
	}
}

func TestCompute(t *testing.T) {
	p := gridtest.New()
	base, _ := p.BaseCells()

	tests := []struct {
		name          string
		cells         []grid.CellID
		resolution    int
		wantPentagons int
	}{
		{"Empty", nil, 3, 0},
		{"All Base Cells", base, 0, 12},
		{"Hexagons Only", base[:4], 0, 0},
		{"One Pentagon", base[:5], 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compute(p, tt.cells, tt.resolution)
			if err != nil {
				t.Fatalf("Compute failed: %v", err)
			}
			if s.Count != len(tt.cells) {
				t.Errorf("Count = %d, want %d", s.Count, len(tt.cells))
			}
			if s.Pentagons != tt.wantPentagons {
				t.Errorf("Pentagons = %d, want %d", s.Pentagons, tt.wantPentagons)
			}
			if s.Pentagons < 0 || s.Pentagons > s.Count {
				t.Errorf("Pentagons = %d out of [0, %d]", s.Pentagons, s.Count)
			}
			if s.Resolution != tt.resolution {
				t.Errorf("Resolution = %d, want %d", s.Resolution, tt.resolution)
			}
			if want := float64(len(tt.cells)) * AreaKm2(tt.resolution); s.ApproxAreaKm2 != want {
				t.Errorf("ApproxAreaKm2 = %v, want %v", s.ApproxAreaKm2, want)
			}
		})
	}
}

func TestComputeExtraPentagons(t *testing.T) {
	p := gridtest.New()
	a := gridtest.LatticeID(10, 10, 4)
	b := gridtest.LatticeID(-10, 50, 4)
	p.Pentagons = map[grid.CellID]bool{b: true}

	s, err := Compute(p, []grid.CellID{a, b}, 4)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if s.Pentagons != 1 {
		t.Errorf("Pentagons = %d, want 1", s.Pentagons)
	}
}

func TestComputeProviderError(t *testing.T) {
	_, err := Compute(gridtest.New(), []grid.CellID{"garbage"}, 2)
	if !errors.Is(err, grid.ErrInvalidCell) {
		t.Errorf("Compute error = %v, want ErrInvalidCell", err)
	}
}

func TestSummaryLabelsAreaApproximate(t *testing.T) {
	s := Stats{Count: 3, Pentagons: 1, Resolution: 2, ApproxAreaKm2: 260237.562}
	got := s.Summary()
	for _, want := range []string{"Hexagons: 3", "Pentagons: 1", "Resolution: 2", "Approx. Area: 260237.56 km²"} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary() = %q, missing %q", got, want)
		}
	}
}
