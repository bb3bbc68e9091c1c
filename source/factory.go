package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ssc5/pentrack/config"
	"github.com/ssc5/pentrack/geom"
	"github.com/ssc5/pentrack/particle"
)

// entryScanner consumes the whitespace-separated tokens of one source
// entry strictly left to right. The first error sticks; later reads return
// zero values so parsing code stays linear.
type entryScanner struct {
	mode string
	toks []string
	err  error
}

func (s *entryScanner) fail(format string, args ...interface{}) {
	if s.err == nil {
		s.err = fmt.Errorf(format, args...)
	}
}

func (s *entryScanner) next(what string) string {
	if s.err != nil {
		return ""
	}
	if len(s.toks) == 0 {
		s.fail("source %q: missing %s parameter", s.mode, what)
		return ""
	}
	tok := s.toks[0]
	s.toks = s.toks[1:]
	return tok
}

func (s *entryScanner) float(what string) float64 {
	tok := s.next(what)
	if s.err != nil {
		return 0
	}
	x, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		s.fail("source %q: bad %s parameter %q", s.mode, what, tok)
	}
	return x
}

// flag parses a 0/1 token.
func (s *entryScanner) flag(what string) bool {
	tok := s.next(what)
	if s.err != nil {
		return false
	}
	switch tok {
	case "0":
		return false
	case "1":
		return true
	}
	s.fail("source %q: bad %s flag %q, want 0 or 1", s.mode, what, tok)
	return false
}

func (s *entryScanner) ptype() particle.Type {
	tok := s.next("particle type")
	if s.err != nil {
		return 0
	}
	t, err := particle.TypeFromName(tok)
	if err != nil {
		s.fail("source %q: %v", s.mode, err)
	}
	return t
}

// New parses one source configuration entry and constructs the matching
// strategy. The entry is the mode keyword followed by its positional
// parameters; see config.Example for the table of modes. Angles are read
// in degrees and stored in radians.
func New(entry string, geo *geom.Geometry) (Source, error) {
	toks := strings.Fields(entry)
	if len(toks) == 0 {
		return nil, fmt.Errorf("source: empty source entry")
	}
	s := &entryScanner{mode: toks[0], toks: toks[1:]}

	var src Source
	switch s.mode {
	case "boxvolume":
		t := s.ptype()
		xmin, xmax := s.float("xmin"), s.float("xmax")
		ymin, ymax := s.float("ymin"), s.float("ymax")
		zmin, zmax := s.float("zmin"), s.float("zmax")
		activeTime := s.float("activeTime")
		psw := s.flag("phaseSpaceWeighting")
		if s.err == nil {
			src = NewCuboidVolumeSource(t, activeTime, psw,
				xmin, xmax, ymin, ymax, zmin, zmax)
		}

	case "cylvolume":
		t := s.ptype()
		rmin, rmax := s.float("rmin"), s.float("rmax")
		phimin, phimax := s.float("phimin"), s.float("phimax")
		zmin, zmax := s.float("zmin"), s.float("zmax")
		activeTime := s.float("activeTime")
		psw := s.flag("phaseSpaceWeighting")
		if s.err == nil {
			src = NewCylindricalVolumeSource(t, activeTime, psw,
				rmin, rmax,
				phimin*config.DegToRad, phimax*config.DegToRad,
				zmin, zmax)
		}

	case "STLvolume":
		t := s.ptype()
		sourceFile := s.next("mesh file")
		activeTime := s.float("activeTime")
		psw := s.flag("phaseSpaceWeighting")
		if s.err == nil {
			var err error
			src, err = NewMeshVolumeSource(t, activeTime, psw, sourceFile)
			if err != nil {
				return nil, fmt.Errorf("source %q: %w", s.mode, err)
			}
		}

	case "cylsurface":
		t := s.ptype()
		rmin, rmax := s.float("rmin"), s.float("rmax")
		phimin, phimax := s.float("phimin"), s.float("phimax")
		zmin, zmax := s.float("zmin"), s.float("zmax")
		activeTime := s.float("activeTime")
		eNormal := s.float("Enormal")
		if s.err == nil {
			var err error
			src, err = NewCylindricalSurfaceSource(t, activeTime, eNormal,
				geo, rmin, rmax,
				phimin*config.DegToRad, phimax*config.DegToRad,
				zmin, zmax)
			if err != nil {
				return nil, fmt.Errorf("source %q: %w", s.mode, err)
			}
		}

	case "STLsurface":
		t := s.ptype()
		sourceFile := s.next("mesh file")
		activeTime := s.float("activeTime")
		eNormal := s.float("Enormal")
		if s.err == nil {
			var err error
			src, err = NewMeshSurfaceSource(t, activeTime, eNormal,
				geo, sourceFile)
			if err != nil {
				return nil, fmt.Errorf("source %q: %w", s.mode, err)
			}
		}

	default:
		return nil, fmt.Errorf("source: unknown source mode %q", s.mode)
	}

	if s.err != nil {
		return nil, s.err
	}
	return src, nil
}
