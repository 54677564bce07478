// Package shepardio reads and writes the JSON point files consumed and
// produced by the shepard pipeline: an array of objects, one per point,
// each carrying one numeric key per axis plus an optional value key.
package shepardio

import (
	"io"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/spatial-idw/shepard/numeric"
	"github.com/spatial-idw/shepard/point"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformedInput is returned when the JSON root is not a non-empty
// array, or any element is not an object carrying every axis key, and
// discards the whole batch read so far — a caller never receives a
// partially-populated slice to silently work with.
var ErrMalformedInput = errors.New("shepardio: malformed point data")

// ReadPoints reads points from r: the JSON root must be a non-empty
// array of objects; each object must carry a numeric value under every
// name in axisNames, in order, becoming that point's coordinates, plus
// an optional numeric value under valueName (defaulting to the zero
// value of V when absent or non-numeric).
//
// Coordinate-equal points are filtered to first-occurrence-wins: a
// later point whose coordinates compare equal (via Point.LessLex, under
// numeric.IsEqual tolerance) to an already-kept one is discarded. Set
// allowDuplicates to skip this filtering and keep every point as read.
func ReadPoints[C numeric.Numeric, V numeric.Numeric](r io.Reader, axisNames []string, valueName string, allowDuplicates bool) ([]point.Point[C, V], error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "shepardio: read")
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrap(ErrMalformedInput, err.Error())
	}
	if len(records) == 0 {
		return nil, ErrMalformedInput
	}

	n := len(axisNames)
	points := make([]point.Point[C, V], 0, len(records))

	for _, record := range records {
		coords := make([]C, n)
		for i, name := range axisNames {
			raw, ok := record[name]
			num, isNum := raw.(float64)
			if !ok || !isNum {
				return nil, errors.Wrapf(ErrMalformedInput, "missing or non-numeric coordinate %q", name)
			}
			coords[i] = C(num)
		}

		var value V
		if raw, ok := record[valueName]; ok {
			if num, isNum := raw.(float64); isNum {
				value = V(num)
			}
		}

		points = append(points, point.New[C, V](coords, value))
	}

	if allowDuplicates {
		return points, nil
	}
	return dedupe(points), nil
}

// dedupe keeps, for each coordinate-equal group, whichever member
// appears earliest in the original input order. It sorts a copy of the
// indices under LessLex to bring coordinate-equal points adjacent to
// each other, then scans each contiguous run for its lowest original
// index.
func dedupe[C numeric.Numeric, V numeric.Numeric](points []point.Point[C, V]) []point.Point[C, V] {
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return points[order[a]].LessLex(points[order[b]])
	})

	keep := make(map[int]bool)
	for i := 0; i < len(order); {
		j := i + 1
		first := order[i]
		for j < len(order) && points[order[j]].Equal(points[first]) {
			if order[j] < first {
				first = order[j]
			}
			j++
		}
		keep[first] = true
		i = j
	}

	out := make([]point.Point[C, V], 0, len(keep))
	for i, p := range points {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// ReadPointsFile opens filename and reads points from it. A missing
// file is reported as an error, so callers can distinguish "file
// absent" from "file present but empty" in their own diagnostics.
func ReadPointsFile[C numeric.Numeric, V numeric.Numeric](filename string, axisNames []string, valueName string, allowDuplicates bool) ([]point.Point[C, V], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "shepardio: open %s", filename)
	}
	defer file.Close()

	return ReadPoints[C, V](file, axisNames, valueName, allowDuplicates)
}

// WritePoints serializes points as an array of objects, one numeric key
// per axis name plus valueName, indented by indent spaces (0 for
// compact output).
func WritePoints[C numeric.Numeric, V numeric.Numeric](w io.Writer, points []point.Point[C, V], axisNames []string, valueName string, indent int) error {
	records := make([]map[string]any, len(points))
	for i, p := range points {
		record := make(map[string]any, len(axisNames)+1)
		for axis, name := range axisNames {
			coord, err := p.Coord(axis)
			if err != nil {
				return errors.Wrapf(err, "shepardio: point %d", i)
			}
			record[name] = coord
		}
		record[valueName] = p.Value()
		records[i] = record
	}

	enc := json.NewEncoder(w)
	if indent > 0 {
		enc.SetIndent("", spaces(indent))
	}
	if err := enc.Encode(records); err != nil {
		return errors.Wrap(err, "shepardio: encode")
	}
	return nil
}

// WritePointsFile creates or truncates filename and writes points to it.
func WritePointsFile[C numeric.Numeric, V numeric.Numeric](filename string, points []point.Point[C, V], axisNames []string, valueName string, indent int) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "shepardio: create %s", filename)
	}
	defer file.Close()

	return WritePoints[C, V](file, points, axisNames, valueName, indent)
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
