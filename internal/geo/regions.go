package geo

import (
	"errors"
	"fmt"
)

// GlobalName is the sentinel region spanning the whole sphere
const GlobalName = "global"

// CustomName is the name given to a region supplied on the command line
const CustomName = "custom"

var ErrUnknownRegion = errors.New("unknown region")

// WorldBounds spans the full sphere
var WorldBounds = Bounds{MinLat: -90, MaxLat: 90, MinLon: -180, MaxLon: 180}

// Region is a named geographic bounding box
type Region struct {
	Name   string
	Bounds Bounds
}

// IsGlobal reports whether the region selects the whole-sphere paths
func (r Region) IsGlobal() bool {
	return r.Name == GlobalName
}

// LatRange returns the north-south span in degrees
func (r Region) LatRange() float64 {
	return r.Bounds.MaxLat - r.Bounds.MinLat
}

// LngRange returns the west-east span in degrees
func (r Region) LngRange() float64 {
	return r.Bounds.MaxLon - r.Bounds.MinLon
}

// Validate checks that the box is inside the sphere and not degenerate
func (r Region) Validate() error {
	b := r.Bounds
	if r.Name == "" {
		return errors.New("region name is empty")
	}
	if b.MinLon < -180 || b.MaxLon > 180 || b.MinLat < -90 || b.MaxLat > 90 {
		return fmt.Errorf("region %s: bounds %s outside the sphere", r.Name, b)
	}
	if b.MinLon >= b.MaxLon {
		return fmt.Errorf("region %s: west %.4f must be less than east %.4f", r.Name, b.MinLon, b.MaxLon)
	}
	if b.MinLat >= b.MaxLat {
		return fmt.Errorf("region %s: south %.4f must be less than north %.4f", r.Name, b.MinLat, b.MaxLat)
	}
	return nil
}

// NewRegion builds a region from [west, south, east, north]
func NewRegion(name string, west, south, east, north float64) Region {
	return Region{
		Name: name,
		Bounds: Bounds{
			MinLat: south,
			MaxLat: north,
			MinLon: west,
			MaxLon: east,
		},
	}
}

// Catalog is an ordered, immutable set of regions
type Catalog struct {
	regions []Region
	byName  map[string]int
}

// DefaultRegions is the built-in region list, in display order
var DefaultRegions = []Region{
	{Name: GlobalName, Bounds: WorldBounds},
	NewRegion("northAmerica", -170, 5, -50, 70),
	NewRegion("europe", -10, 35, 40, 70),
	NewRegion("asia", 60, 0, 150, 60),
	NewRegion("africa", -20, -35, 50, 37),
	NewRegion("southAmerica", -85, -60, -30, 15),
	NewRegion("australia", 110, -45, 155, -10),
}

// NewCatalog creates a catalog of the default regions plus any extras
func NewCatalog(extra ...Region) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]int)}

	for _, r := range append(append([]Region{}, DefaultRegions...), extra...) {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byName[r.Name]; exists {
			return nil, fmt.Errorf("duplicate region %q", r.Name)
		}
		c.byName[r.Name] = len(c.regions)
		c.regions = append(c.regions, r)
	}

	return c, nil
}

// Lookup returns the region with the given name
func (c *Catalog) Lookup(name string) (Region, error) {
	i, ok := c.byName[name]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q (have %v)", ErrUnknownRegion, name, c.Names())
	}
	return c.regions[i], nil
}

// Names returns the region names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.regions))
	for i, r := range c.regions {
		names[i] = r.Name
	}
	return names
}

// Next returns the region after name, wrapping around; step may be negative
func (c *Catalog) Next(name string, step int) Region {
	i, ok := c.byName[name]
	if !ok {
		return c.regions[0]
	}
	n := len(c.regions)
	return c.regions[((i+step)%n+n)%n]
}

// Len returns the number of regions
func (c *Catalog) Len() int {
	return len(c.regions)
}
