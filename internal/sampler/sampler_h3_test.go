package sampler

import (
	"context"
	"testing"

	"h3vector/internal/geo"
	"h3vector/internal/grid"
)

func TestSampleH3GlobalResolution0(t *testing.T) {
	p := grid.NewH3()

	cells, err := Sample(context.Background(), p, 0, lookup(t, geo.GlobalName))
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if len(cells) != grid.BaseCellCount {
		t.Errorf("got %d cells, want %d", len(cells), grid.BaseCellCount)
	}
	assertSampled(t, p, cells, 0, grid.BaseCellCount)
}

func TestSampleH3Australia(t *testing.T) {
	p := grid.NewH3()

	cells, err := Sample(context.Background(), p, 8, lookup(t, "australia"))
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	assertSampled(t, p, cells, 8, 500)
}

func TestSampleH3GlobalLattice(t *testing.T) {
	p := grid.NewH3()

	cells, err := Sample(context.Background(), p, 5, lookup(t, geo.GlobalName))
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	assertSampled(t, p, cells, 5, Cap(5))
}

func TestSampleH3Repeatable(t *testing.T) {
	p := grid.NewH3()
	region := lookup(t, "europe")

	first, err := Sample(context.Background(), p, 4, region)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	second, err := Sample(context.Background(), p, 4, region)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if len(first) != len(second) {
		t.Errorf("repeat sample has %d cells, first had %d", len(second), len(first))
	}
}

func TestSampleH3GlobalResolution3Overshoot(t *testing.T) {
	p := grid.NewH3()

	cells, err := Sample(context.Background(), p, 3, lookup(t, geo.GlobalName))
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	// the base cell that crosses the cap of 5000 is kept whole
	if len(cells) != 5031 {
		t.Errorf("got %d cells, want 5031", len(cells))
	}
	assertSampled(t, p, cells, 3, Cap(3)+343)
}
