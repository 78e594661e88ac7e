package update

import (
	"fmt"
	"strings"

	hversion "github.com/hashicorp/go-version"

	"unyson/internal/clierr"
	"unyson/internal/util"
)

// Direction selects which neighbour of the installed version a Plan targets.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Step is the outcome of planning an upgrade or downgrade.
// When Boundary is set there is nothing to do and To is empty.
type Step struct {
	From     string
	To       string
	Boundary bool
}

// Plan picks the version adjacent to current in versions, which must be in
// ascending order.
//
// Errors:
//
//   - unyson-error-version-not-located -- if current is not in versions
func Plan(versions []string, current string, dir Direction) (Step, error) {
	idx := Locate(versions, current)
	if idx < 0 {
		return Step{}, clierr.ErrorVersionNotLocated(current)
	}

	step := Step{From: versions[idx]}
	switch dir {
	case Up:
		if idx == len(versions)-1 {
			step.Boundary = true
			return step, nil
		}
		step.To = versions[idx+1]
	case Down:
		if idx == 0 {
			step.Boundary = true
			return step, nil
		}
		step.To = versions[idx-1]
	default:
		return Step{}, fmt.Errorf("unknown direction %d", dir)
	}
	util.Log.Debugf("Planned %s step %s -> %s", dir, step.From, step.To)
	return step, nil
}

// Locate returns the index of current in versions, or -1. An exact match
// wins over a semantic one.
func Locate(versions []string, current string) int {
	for i, v := range versions {
		if v == current {
			return i
		}
	}
	for i, v := range versions {
		if SameVersion(v, current) {
			return i
		}
	}
	return -1
}

// SameVersion reports whether a and b name the same release, so "2.1" and
// "2.1.0" match. Strings that don't parse as versions only match exactly.
func SameVersion(a, b string) bool {
	if a == b {
		return true
	}
	va, err := hversion.NewVersion(strings.TrimPrefix(a, "v"))
	if err != nil {
		return false
	}
	vb, err := hversion.NewVersion(strings.TrimPrefix(b, "v"))
	if err != nil {
		return false
	}
	return va.Equal(vb)
}
