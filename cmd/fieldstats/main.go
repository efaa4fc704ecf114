package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"sdfworld/core"
	"sdfworld/export"
)

func main() {
	axisName := flag.String("axis", "y", "Slice axis: x, y or z")
	every := flag.Int("every", 1, "Print every n-th slice")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: fieldstats [-axis y] [-every n] <volume file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	axis, err := core.ParseAxis(*axisName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *every < 1 {
		*every = 1
	}

	if err := run(flag.Arg(0), axis, *every); err != nil {
		core.Logger().Error("fieldstats failed", "err", err)
		os.Exit(1)
	}
}

func run(path string, axis core.Axis, every int) error {
	field, header, err := export.Load(path)
	if err != nil {
		return err
	}

	fmt.Println("=== Distance Field Statistics ===")
	fmt.Printf("File: %s\n", path)
	fmt.Printf("Volume: %s, format %s, layout %s\n", field.Dims(), header.Format, header.Layout)

	total := field.Stats()
	fmt.Printf("Range: %.4f to %.4f\n", total.Min, total.Max)
	fmt.Printf("Solid: %d of %d voxels (%.1f%%)\n\n", total.Solid, total.Total, total.SolidFraction()*100)

	n := sliceCount(field.Dims(), axis)
	fmt.Printf("%-6s %10s %10s %8s\n", axis.String()+"=", "min", "max", "solid%")
	for i := 0; i < n; i += every {
		_, _, values, err := field.Slice(axis, i)
		if err != nil {
			return err
		}
		s := core.SummarizeValues(values)
		fmt.Printf("%-6d %10.4f %10.4f %7.1f%%\n", i, s.Min, s.Max, s.SolidFraction()*100)
	}
	return nil
}

func sliceCount(d core.Dims, axis core.Axis) int {
	switch axis {
	case core.AxisX:
		return d.W
	case core.AxisY:
		return d.H
	default:
		return d.D
	}
}
