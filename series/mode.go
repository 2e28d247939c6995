package series

import (
	"strconv"
	"strings"

	"github.com/rustyeddy/swingtree/tree"
)

// Mode selects the statistic a Series tracks.
type Mode int

const (
	Minimum Mode = iota
	Maximum
	Sum
)

var modeNames = map[Mode]string{
	Minimum: "minimum",
	Maximum: "maximum",
	Sum:     "sum",
}

var modeAliases = map[string]Mode{
	"minimum": Minimum,
	"min":     Minimum,
	"maximum": Maximum,
	"max":     Maximum,
	"sum":     Sum,
}

// Modes lists every supported mode.
func Modes() []Mode {
	return []Mode{Minimum, Maximum, Sum}
}

// ParseMode resolves a mode name. The short forms "min" and "max" are
// accepted as well.
func ParseMode(name string) (Mode, error) {
	m, ok := modeAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, unknownMode(name)
	}
	return m, nil
}

func unknownMode(name string) error {
	return &tree.InvalidOperationError{Operation: name, Err: tree.ErrConfiguration}
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, unknownMode(m.String())
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) combiner() (tree.Combiner[float64], error) {
	switch m {
	case Minimum:
		return tree.FloatMinimum[float64](), nil
	case Maximum:
		return tree.FloatMaximum[float64](), nil
	case Sum:
		return tree.Sum[float64](), nil
	}
	return nil, unknownMode(m.String())
}
