package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseWKT parses one or more POLYGON / MULTIPOLYGON statements.
//
//	POLYGON((x y, x y, ...), (hole ...))
//	MULTIPOLYGON(((x y, ...)), ((x y, ...), (hole ...)))
//
// Coordinates are kept as floats; only the first inner ring of a polygon is
// used as its hole.
func ParseWKT(wkt string) (Data, error) {
	stmts := splitStatements(wkt)
	if len(stmts) == 0 {
		return Data{}, fmt.Errorf("%w: empty", ErrInvalidWKT)
	}
	var d Data
	for n, s := range stmts {
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return Data{}, fmt.Errorf("%w: statement %d: unbalanced parentheses", ErrInvalidWKT, n+1)
		}
		body := s[i+1 : j]
		name := fmt.Sprintf("wkt-%d", n+1)
		switch kw := strings.ToUpper(strings.TrimSpace(s[:i])); kw {
		case "POLYGON":
			rings, err := parseRings(body)
			if err != nil {
				return Data{}, fmt.Errorf("statement %d: %w", n+1, err)
			}
			d.add(name, rings)
		case "MULTIPOLYGON":
			for k, poly := range groups(body) {
				rings, err := parseRings(poly)
				if err != nil {
					return Data{}, fmt.Errorf("statement %d polygon %d: %w", n+1, k+1, err)
				}
				d.add(fmt.Sprintf("%s.%d", name, k+1), rings)
			}
		default:
			return Data{}, fmt.Errorf("%w: unsupported type %q", ErrInvalidWKT, kw)
		}
	}
	if len(d.Shapes) == 0 {
		return Data{}, ErrNoPolygons
	}
	return d, nil
}

func parseRings(body string) ([]Ring, error) {
	var rings []Ring
	for _, g := range groups(body) {
		r, err := parseTuples(g)
		if err != nil {
			return nil, err
		}
		rings = append(rings, r)
	}
	if len(rings) == 0 {
		return nil, fmt.Errorf("%w: polygon without rings", ErrInvalidWKT)
	}
	return rings, nil
}

// parseTuples reads "x y, x y, ...".
func parseTuples(block string) (Ring, error) {
	var out Ring
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) == 0 {
			continue
		}
		if len(parts) < 2 {
			return nil, fmt.Errorf("%w: bad coordinate %q", ErrInvalidWKT, tup)
		}
		x, err1 := strconv.ParseFloat(parts[0], 64)
		y, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: bad coordinate %q", ErrInvalidWKT, tup)
		}
		if !validCoord(x, y) {
			return nil, fmt.Errorf("%w: %w %q", ErrInvalidWKT, ErrInvalidCoordinate, strings.TrimSpace(tup))
		}
		out = append(out, [2]float64{x, y})
	}
	return out, nil
}

// groups returns the contents of every top-level parenthesised group in s.
func groups(s string) []string {
	var out []string
	depth, start := 0, -1
	for i, ch := range s {
		switch ch {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth == 0 && start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
		}
	}
	return out
}

// splitStatements cuts text into statements that each end when their
// parentheses balance. Lines starting with '#' are comments.
func splitStatements(s string) []string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	src := b.String()

	var out []string
	depth, start := 0, 0
	for i, ch := range src {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				out = append(out, strings.TrimSpace(src[start:i+1]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(src[start:]); rest != "" {
		// keyword without a closing parenthesis
		out = append(out, rest)
	}
	return out
}
