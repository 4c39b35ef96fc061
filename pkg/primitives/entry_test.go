package primitives

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAbsoluteOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    Direction
		want Point
	}{
		{E, Point{9, 9}},
		{S, Point{9, 5}},
		{NW, Point{5, 13}},
		{SW, Point{5, 5}},
		{W, Point{5, 9}},
	}
	for _, tt := range tests {
		e := NewWordEntry("HELLO", 9, 9, tt.d)
		require.Equal(t, tt.want, e.AbsoluteOrigin(), tt.d.String())
	}
}

func TestAbsoluteEnding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    Direction
		want Point
	}{
		{E, Point{13, 9}},
		{S, Point{9, 9}},
		{NW, Point{9, 9}},
		{SW, Point{9, 9}},
		{W, Point{9, 9}},
	}
	for _, tt := range tests {
		e := NewWordEntry("HELLO", 9, 9, tt.d)
		require.Equal(t, tt.want, e.AbsoluteEnding(), tt.d.String())
	}
}

func TestCoordinates(t *testing.T) {
	t.Parallel()

	walk := func(dx, dy int) []Point {
		points := make([]Point, 5)
		for i := range points {
			points[i] = Point{9 + i*dx, 9 + i*dy}
		}
		return points
	}
	tests := map[Direction][]Point{
		E:  walk(1, 0),
		N:  walk(0, 1),
		NE: walk(1, 1),
		NW: walk(-1, 1),
		S:  walk(0, -1),
		SE: walk(1, -1),
		SW: walk(-1, -1),
		W:  walk(-1, 0),
	}
	for d, want := range tests {
		e := NewWordEntry("HELLO", 9, 9, d)
		if diff := cmp.Diff(want, e.Cells()); diff != "" {
			t.Errorf("Cells(%s) mismatch (-want +got):\n%s", d, diff)
		}
		require.Equal(t, e.Origin, e.Coordinate(0))
		require.Equal(t, e.Coordinate(e.Len()-1), e.EndingCoordinate())
	}
}

func TestCoordinatePanicsOnInvalidDirection(t *testing.T) {
	t.Parallel()

	e := WordEntry{Name: "HELLO", Direction: N | S}
	require.Error(t, e.Validate())

	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error")
		var invalid *InvalidEntryError
		require.True(t, errors.As(err, &invalid))
		require.Equal(t, "HELLO", invalid.Name)
	}()
	e.Coordinate(1)
}

func TestWordEntryString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "HELLO at (1, 1) with E", NewWordEntry("HELLO", 1, 1, E).String())
}

func TestIntersectWith(t *testing.T) {
	t.Parallel()

	w1 := NewWordEntry("HELLO", 1, 2, E)
	w2 := NewWordEntry("HOUSE", 3, 1, N)
	w3 := NewWordEntry("HOUSE", 3, 3, N)
	require.True(t, w1.IntersectWith(w2))
	require.False(t, w1.IntersectWith(w3))
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	w1 := NewWordEntry("HELLO", 1, 2, E)
	moved := w1.Translate(Point{1, 1})
	require.Equal(t, Point{2, 3}, moved.Origin)
	require.Equal(t, Point{1, 2}, w1.Origin, "translate must not mutate the receiver")
}

func TestPointDelta(t *testing.T) {
	t.Parallel()

	d := Point{10, 0}.Delta(Point{4, 1})
	require.Equal(t, Point{6, -1}, d)
	require.Equal(t, Point{10, 0}, Point{4, 1}.Add(d))
}

func TestRunUnicode(t *testing.T) {
	t.Parallel()

	e := NewWordEntry("NIÑO", 0, 0, E)
	run := e.Run()
	require.Equal(t, 4, run.Length())
	letter, cell := run.At(2)
	require.Equal(t, 'Ñ', letter)
	require.Equal(t, Point{2, 0}, cell)
	require.Equal(t, "NIÑO (0, 0)..(3, 0)", run.String())
	require.Equal(t, "", (&LetterRun{}).String())
}
