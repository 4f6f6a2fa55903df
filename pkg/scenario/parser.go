package scenario

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/OpenTraceField/pkg/field"
	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
)

// Parser reads .fld scenario files.
type Parser struct {
	parser *participle.Parser[TextFile]
}

// NewParser creates a new text scenario parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[TextFile](
		participle.Lexer(TextLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a scenario from a reader.
func (p *Parser) Parse(r io.Reader) (*Scenario, error) {
	file, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file.Scenario()
}

// ParseString parses a scenario from a string.
func (p *Parser) ParseString(input string) (*Scenario, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return file.Scenario()
}

// Scenario converts the parse tree, checking values the grammar cannot.
func (f *TextFile) Scenario() (*Scenario, error) {
	sc := &Scenario{Voltages: field.VoltageMap{}}

	for _, st := range f.Statements {
		switch {
		case st.Name != nil:
			sc.Name = *st.Name

		case st.Grid != nil:
			if *st.Grid < 1 {
				return nil, fmt.Errorf("%s: grid size must be at least 1, got %d", st.Pos, *st.Grid)
			}
			sc.GridSize = *st.Grid

		case st.Line != nil:
			sc.Shapes = append(sc.Shapes, geometry.Line{P1: st.Line.P1.point(), P2: st.Line.P2.point()})

		case st.Circle != nil:
			r, err := radius(st.Circle.Radius)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", st.Pos, err)
			}
			sc.Shapes = append(sc.Shapes, geometry.Circle{Origin: st.Circle.Origin.point(), Radius: r})

		case st.HalfCircle != nil:
			r, err := radius(st.HalfCircle.Radius)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", st.Pos, err)
			}
			sc.Shapes = append(sc.Shapes, geometry.HalfCircle{
				Origin: st.HalfCircle.Origin.point(),
				Radius: r,
				Angle:  st.HalfCircle.Angle,
			})

		case st.Square != nil:
			sq := st.Square
			sc.Shapes = append(sc.Shapes, geometry.Square{
				P1: sq.P1.point(), P2: sq.P2.point(), P3: sq.P3.point(), P4: sq.P4.point(),
			})

		case st.Voltage != nil:
			pin, err := pinID(st.Voltage.Pin)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", st.Pos, err)
			}
			sc.Voltages[pin] = st.Voltage.Value
		}
	}

	return sc, nil
}

func radius(v int) (uint, error) {
	if v < 0 {
		return 0, fmt.Errorf("radius must not be negative, got %d", v)
	}
	return uint(v), nil
}

func pinID(v int) (field.PinID, error) {
	if v < 0 || int64(v) > int64(^uint32(0)) {
		return 0, fmt.Errorf("pin %d out of range", v)
	}
	return field.PinID(v), nil
}
