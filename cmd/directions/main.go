// Command directions prints the grid direction of every turn about each axis.
package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/andtech/swinglab/orient"
)

// directionRow is one turn about one axis.
type directionRow struct {
	Axis    string  `csv:"axis"`
	Turns   int     `csv:"turns"`
	Degrees float64 `csv:"degrees"`
	X       int     `csv:"x"`
	Y       int     `csv:"y"`
	Z       int     `csv:"z"`
}

// directionRows lists all turns for the given axes in turn order.
func directionRows(axes []orient.Axis) ([]directionRow, error) {
	rows := make([]directionRow, 0, len(axes)*orient.Max)
	for _, axis := range axes {
		for turns := 0; turns < orient.Max; turns++ {
			r := orient.FromTurns(turns)
			d, err := r.Direction(axis)
			if err != nil {
				return nil, err
			}
			rows = append(rows, directionRow{
				Axis:    axis.String(),
				Turns:   turns,
				Degrees: r.EulerAngle(),
				X:       d.X,
				Y:       d.Y,
				Z:       d.Z,
			})
		}
	}
	return rows, nil
}

func writeDirections(w io.Writer, axes []orient.Axis) error {
	rows, err := directionRows(axes)
	if err != nil {
		return err
	}
	return gocsv.Marshal(rows, w)
}

func main() {
	axis := flag.String("axis", "", "Only print this axis (x, y or z)")
	flag.Parse()

	axes := []orient.Axis{orient.AxisX, orient.AxisY, orient.AxisZ}
	switch *axis {
	case "":
	case "x", "X":
		axes = axes[0:1]
	case "y", "Y":
		axes = axes[1:2]
	case "z", "Z":
		axes = axes[2:3]
	default:
		slog.Error("unknown axis", "axis", *axis)
		os.Exit(2)
	}

	if err := writeDirections(os.Stdout, axes); err != nil {
		slog.Error("failed to write directions", "error", err)
		os.Exit(1)
	}
}
