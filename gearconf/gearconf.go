/*
Package gearconf configures a pair of meshing gears from a YAML document.

Example:

	module: 10
	pressure_angle: 20     # degrees
	profile_shift: 0.2     # applied to gear A with negative sign
	gears:
	  - teeth: 18
	    cutter_teeth: 0    # rack cutter
	  - teeth: 36
	    dedendum: 1.25
	    cutter_teeth: 24

Omitted values take the defaults of Default.
*/
package gearconf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/npillmayer/gears"
	"github.com/npillmayer/gears/kinematics"
	"github.com/npillmayer/gears/tooth"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'gears'
func tracer() tracing.Trace {
	return tracing.Select("gears")
}

// ErrInvalidConfig is returned for configurations which cannot be built.
var ErrInvalidConfig = errors.New("invalid gear configuration")

// SectorDeg is a sector in degrees.
type SectorDeg struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Gear configures one of the two gears.
type Gear struct {
	Teeth       int        `yaml:"teeth"`
	Addendum    float64    `yaml:"addendum"`     // coefficient, 0 → standard
	Dedendum    float64    `yaml:"dedendum"`     // coefficient, 0 → standard
	CutterTeeth int        `yaml:"cutter_teeth"` // 0 → rack cutter
	Sector      *SectorDeg `yaml:"sector"`       // nil → default for the gear's side
	Rotation    *float64   `yaml:"rotation"`     // degrees, nil → default for the gear's side
	CCW         *bool      `yaml:"ccw"`          // nil → default for the gear's side
}

// Config configures a pair of meshing gears A and B.
type Config struct {
	Module        float64 `yaml:"module"`
	PressureAngle float64 `yaml:"pressure_angle"` // degrees
	ProfileShift  float64 `yaml:"profile_shift"`  // coefficient, gear A gets −shift, gear B +shift
	Resolution    float64 `yaml:"resolution"`     // 0 → module · 0.01
	Tolerance     float64 `yaml:"tolerance"`      // 0 → tooth.DefaultTolerance
	Gears         []Gear  `yaml:"gears"`
}

// side holds the placement of gear A (index 0) and gear B (index 1):
// gear A is left of the pitch point and turns clockwise, gear B is right of
// it, rotated by half a turn, and turns counterclockwise.
var side = [2]struct {
	sector   SectorDeg
	rotation float64
	ccw      bool
	sign     float64
}{
	{SectorDeg{270, 90}, 0, false, -1},
	{SectorDeg{90, 270}, 180, true, 1},
}

// Default returns the configuration of two equal standard gears with
// 18 teeth and module 10.
func Default() *Config {
	return &Config{
		Module:        10,
		PressureAngle: gears.StandardPressureAngle / gears.Deg2Rad,
		Gears: []Gear{
			{Teeth: 18},
			{Teeth: 18},
		},
	}
}

// Load reads a configuration from YAML. Unknown keys are errors.
func Load(r io.Reader) (*Config, error) {
	conf := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks a configuration, without building it.
func (conf *Config) Validate() error {
	switch {
	case !(conf.Module > 0):
		return fmt.Errorf("%w: module must be positive", ErrInvalidConfig)
	case !(conf.PressureAngle > 0 && conf.PressureAngle < 90):
		return fmt.Errorf("%w: pressure angle must be in (0°, 90°)", ErrInvalidConfig)
	case conf.Resolution < 0 || conf.Tolerance < 0:
		return fmt.Errorf("%w: resolution and tolerance must not be negative", ErrInvalidConfig)
	case len(conf.Gears) != 2:
		return fmt.Errorf("%w: need 2 gears, have %d", ErrInvalidConfig, len(conf.Gears))
	}
	for i, g := range conf.Gears {
		switch {
		case g.Teeth < 3:
			return fmt.Errorf("%w: gear %d: need at least 3 teeth", ErrInvalidConfig, i)
		case g.Addendum < 0 || g.Dedendum < 0:
			return fmt.Errorf("%w: gear %d: negative addendum or dedendum", ErrInvalidConfig, i)
		case g.CutterTeeth < 0 || g.CutterTeeth > 0 && g.CutterTeeth < 3:
			return fmt.Errorf("%w: gear %d: cutter with %d teeth", ErrInvalidConfig, i, g.CutterTeeth)
		}
	}
	return nil
}

// Pair is a built pair of meshing gears, ready for animation.
type Pair struct {
	Teeth        [2]*tooth.HalfTooth
	Sectors      [2]*tooth.GearSector
	Transmission *kinematics.Transmission
	Rack         *kinematics.Rack
}

// Build creates both gears concurrently, then the transmission and the rack
// between them.
func (conf *Config) Build(ctx context.Context) (*Pair, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	pair := &Pair{}
	g, ctx := errgroup.WithContext(ctx)
	for i := range conf.Gears {
		i := i // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ht, gs, err := conf.buildGear(i)
			if err != nil {
				return fmt.Errorf("gear %d: %w", i, err)
			}
			pair.Teeth[i], pair.Sectors[i] = ht, gs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var err error
	if pair.Transmission, err = kinematics.NewTransmission(pair.Teeth[0], pair.Teeth[1]); err != nil {
		return nil, err
	}
	pa := conf.PressureAngle * gears.Deg2Rad
	pair.Rack, err = kinematics.NewRack(conf.Module, pa, pair.Teeth[1].DedendumCoef,
		pair.Teeth[0].DedendumCoef, conf.ProfileShift)
	if err != nil {
		return nil, err
	}
	pair.Rack.SetSmartBoundaries(pair.Teeth[0], pair.Teeth[1])
	tracer().Infof("built gear pair %d/%d, %s", pair.Teeth[0].ToothNum, pair.Teeth[1].ToothNum,
		pair.Transmission)
	return pair, nil
}

func (conf *Config) buildGear(i int) (*tooth.HalfTooth, *tooth.GearSector, error) {
	g := conf.Gears[i]
	ad, de := g.Addendum, g.Dedendum
	if ad == 0 {
		ad = gears.StandardAddendumCoef
	}
	if de == 0 {
		de = gears.StandardDedendumCoef
	}
	params, err := gears.NewGearParams(g.Teeth, conf.Module, conf.PressureAngle*gears.Deg2Rad, ad, de)
	if err != nil {
		return nil, nil, err
	}
	res := conf.Resolution
	if res == 0 {
		res = conf.Module * 0.01
	}
	ht, err := tooth.BuildHalfTooth(params, &tooth.Options{
		ProfileShiftCoef: conf.ProfileShift * side[i].sign,
		Cutter:           tooth.CutterFor(g.CutterTeeth),
		Resolution:       res,
		Tolerance:        conf.Tolerance,
	})
	if err != nil {
		return nil, nil, err
	}
	sec, rot, ccw := side[i].sector, side[i].rotation, side[i].ccw
	if g.Sector != nil {
		sec = *g.Sector
	}
	if g.Rotation != nil {
		rot = *g.Rotation
	}
	if g.CCW != nil {
		ccw = *g.CCW
	}
	sector := tooth.Sector{Start: sec.Start * gears.Deg2Rad, End: sec.End * gears.Deg2Rad}
	gs, err := tooth.NewGearSector(ht, ht, sector, rot*gears.Deg2Rad, ccw)
	if err != nil {
		return nil, nil, err
	}
	return ht, gs, nil
}

// Limits returns the bounding box of both gear sectors and the rack, in the
// coordinate system of the transmission (pitch point at the origin).
func (p *Pair) Limits() (gears.Pair, gears.Pair) {
	ll := gears.P(math.Inf(1), math.Inf(1))
	ur := gears.P(math.Inf(-1), math.Inf(-1))
	merge := func(a, b gears.Pair, shift float64) {
		ll = gears.P(math.Min(ll.X(), a.X()+shift), math.Min(ll.Y(), a.Y()))
		ur = gears.P(math.Max(ur.X(), b.X()+shift), math.Max(ur.Y(), b.Y()))
	}
	for i, gs := range p.Sectors {
		a, b := gs.Limits()
		merge(a, b, p.Teeth[i].PitchRadius*side[i].sign)
	}
	a, b := p.Rack.Limits()
	merge(a, b, 0)
	return ll, ur
}
