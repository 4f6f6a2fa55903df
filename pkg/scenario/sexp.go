package scenario

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chewxy/sexp"

	"github.com/OpenTraceLab/OpenTraceField/pkg/field"
	"github.com/OpenTraceLab/OpenTraceField/pkg/geometry"
)

// ParseSexp reads a scenario in s-expression form:
//
//	(scenario
//	  (name "frame")
//	  (grid 100)
//	  (line (xy 0 0) (xy 99 99))
//	  (circle (xy 30 10) 5)
//	  (voltage 0 10))
//
// The enclosing (scenario ...) form is optional; bare top-level forms are
// read the same way.
func ParseSexp(r io.Reader) (*Scenario, error) {
	exprs, err := sexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	var forms []sexp.Sexp
	for _, e := range exprs {
		if e != nil && (e.IsLeaf() || e.LeafCount() > 0) {
			forms = append(forms, e)
		}
	}
	if len(forms) == 1 && headName(forms[0]) == "scenario" {
		forms = elements(forms[0])[1:]
	}

	sc := &Scenario{Voltages: field.VoltageMap{}}
	for _, form := range forms {
		if err := sc.applyForm(form); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// ParseSexpString is ParseSexp for an in-memory document.
func ParseSexpString(input string) (*Scenario, error) {
	return ParseSexp(strings.NewReader(input))
}

func (sc *Scenario) applyForm(form sexp.Sexp) error {
	items := elements(form)
	if len(items) == 0 {
		return fmt.Errorf("expected a list, got %q", fmt.Sprint(form))
	}
	args := items[1:]

	switch name := atom(items[0]); name {
	case "name":
		if len(args) != 1 {
			return formError(form, "want (name <text>)")
		}
		sc.Name = atom(args[0])

	case "grid":
		size, err := ints(form, args, 1)
		if err != nil {
			return err
		}
		if size[0] < 1 {
			return formError(form, "grid size must be at least 1")
		}
		sc.GridSize = size[0]

	case "line":
		pts, err := points(form, args, 2)
		if err != nil {
			return err
		}
		sc.Shapes = append(sc.Shapes, geometry.Line{P1: pts[0], P2: pts[1]})

	case "circle":
		if len(args) != 2 {
			return formError(form, "want (circle (xy X Y) R)")
		}
		pts, err := points(form, args[:1], 1)
		if err != nil {
			return err
		}
		r, err := radiusArg(form, args[1])
		if err != nil {
			return err
		}
		sc.Shapes = append(sc.Shapes, geometry.Circle{Origin: pts[0], Radius: r})

	case "halfcircle":
		if len(args) != 3 {
			return formError(form, "want (halfcircle (xy X Y) R ANGLE)")
		}
		pts, err := points(form, args[:1], 1)
		if err != nil {
			return err
		}
		r, err := radiusArg(form, args[1])
		if err != nil {
			return err
		}
		angle, err := strconv.ParseFloat(atom(args[2]), 64)
		if err != nil {
			return formError(form, "bad angle")
		}
		sc.Shapes = append(sc.Shapes, geometry.HalfCircle{Origin: pts[0], Radius: r, Angle: angle})

	case "square":
		pts, err := points(form, args, 4)
		if err != nil {
			return err
		}
		sc.Shapes = append(sc.Shapes, geometry.Square{P1: pts[0], P2: pts[1], P3: pts[2], P4: pts[3]})

	case "voltage":
		vals, err := ints(form, args, 2)
		if err != nil {
			return err
		}
		pin, err := pinID(vals[0])
		if err != nil {
			return formError(form, err.Error())
		}
		sc.Voltages[pin] = vals[1]

	default:
		return formError(form, fmt.Sprintf("unknown form %q", name))
	}
	return nil
}

// elements flattens a list into its items by walking Head/Tail.
// Atoms and empty lists yield nil. Head must not be called on an empty
// list, so every step checks LeafCount first.
func elements(s sexp.Sexp) []sexp.Sexp {
	var out []sexp.Sexp
	if s == nil || s.IsLeaf() {
		return out
	}

	for cur := s; cur != nil && !cur.IsLeaf(); cur = cur.Tail() {
		n := cur.LeafCount()
		if n == 0 {
			break
		}
		if head := cur.Head(); head != nil {
			out = append(out, head)
		}
		if n == 1 {
			break
		}
	}
	return out
}

// atom returns the text of a leaf, without surrounding quotes.
func atom(s sexp.Sexp) string {
	if s == nil {
		return ""
	}
	text := fmt.Sprint(s)
	if unq, err := strconv.Unquote(text); err == nil {
		return unq
	}
	return text
}

func headName(s sexp.Sexp) string {
	items := elements(s)
	if len(items) == 0 {
		return ""
	}
	return atom(items[0])
}

func ints(form sexp.Sexp, args []sexp.Sexp, n int) ([]int, error) {
	if len(args) != n {
		return nil, formError(form, fmt.Sprintf("want %d integer arguments, got %d", n, len(args)))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(atom(a))
		if err != nil {
			return nil, formError(form, fmt.Sprintf("argument %d is not an integer", i+1))
		}
		out[i] = v
	}
	return out, nil
}

// points reads n (xy X Y) forms.
func points(form sexp.Sexp, args []sexp.Sexp, n int) ([]geometry.Point, error) {
	if len(args) != n {
		return nil, formError(form, fmt.Sprintf("want %d points, got %d", n, len(args)))
	}
	out := make([]geometry.Point, n)
	for i, a := range args {
		items := elements(a)
		if len(items) != 3 || atom(items[0]) != "xy" {
			return nil, formError(form, fmt.Sprintf("point %d: want (xy X Y)", i+1))
		}
		xy, err := ints(a, items[1:], 2)
		if err != nil {
			return nil, err
		}
		out[i] = geometry.Point{X: xy[0], Y: xy[1]}
	}
	return out, nil
}

func radiusArg(form sexp.Sexp, arg sexp.Sexp) (uint, error) {
	v, err := strconv.Atoi(atom(arg))
	if err != nil {
		return 0, formError(form, "radius is not an integer")
	}
	r, err := radius(v)
	if err != nil {
		return 0, formError(form, err.Error())
	}
	return r, nil
}

func formError(form sexp.Sexp, msg string) error {
	return fmt.Errorf("%v: %s", form, msg)
}
