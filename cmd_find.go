package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"Nav/collision"
	"Nav/constants"
	"Nav/finder"
	"Nav/models"
	"Nav/pathfinding"
)

const maxWalkSteps = 1 << 20

type findOptions struct {
	algo     string
	from, to string
	dump     bool
	color    bool
	walkStep float64
	cellSize float64
	logLevel string
}

func newFindCmd() *cobra.Command {
	var opts findOptions
	cmd := &cobra.Command{
		Use:   "find <grid file>",
		Short: "Find one path on a PNG or text grid",
		Long: "Find one path on a PNG or text grid. Text grids mark blocked cells with '#' or '1'.\n" +
			"Without --from/--to the cells marked 'S' and 'G' in a text grid are used.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd.OutOrStdout(), args[0], &opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.algo, "algo", "a", constants.DefaultStrategy, "search strategy: astar or dijkstra")
	f.StringVar(&opts.from, "from", "", "start cell as x,y")
	f.StringVar(&opts.to, "to", "", "goal cell as x,y")
	f.BoolVar(&opts.dump, "dump", false, "print the grid with the path overlaid")
	f.BoolVar(&opts.color, "color", false, "colour the dump")
	f.Float64Var(&opts.walkStep, "walk-step", 0, "walk the path in steps of this length and print every position")
	f.Float64Var(&opts.cellSize, "cell-size", constants.DefaultCellSize, "cell width used by --walk-step")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	return cmd
}

func parsePoint(s string) (pathfinding.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return pathfinding.Point{}, fmt.Errorf("point %q must look like x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return pathfinding.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return pathfinding.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return pathfinding.Point{X: x, Y: y}, nil
}

// endpoint resolves a flag value, falling back to a marker in a text grid.
func endpoint(value, file string, marker byte) (pathfinding.Point, error) {
	if value != "" {
		return parsePoint(value)
	}
	if !strings.EqualFold(filepath.Ext(file), ".png") {
		raw, err := os.ReadFile(file)
		if err != nil {
			return pathfinding.Point{}, err
		}
		rows := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
		if pt, ok := collision.FindMarker(rows, marker); ok {
			return pt, nil
		}
	}
	return pathfinding.Point{}, fmt.Errorf("no %q marker in %s; pass the cell explicitly", marker, file)
}

func runFind(out io.Writer, file string, opts *findOptions) error {
	logger, err := newLogger(opts.logLevel, true)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	strategy, err := finder.ParseStrategy(opts.algo)
	if err != nil {
		return err
	}
	grid, err := collision.Open(file)
	if err != nil {
		return err
	}
	start, err := endpoint(opts.from, file, 'S')
	if err != nil {
		return err
	}
	goal, err := endpoint(opts.to, file, 'G')
	if err != nil {
		return err
	}

	f, err := finder.New(strategy, logger)
	if err != nil {
		return err
	}
	logger.Info("find", zap.String("file", file), zap.Stringer("start", start), zap.Stringer("goal", goal))
	path := f.FindPath(start, goal, grid)

	fmt.Fprintf(out, "strategy: %s\n", strategy)
	if len(path) == 0 {
		fmt.Fprintf(out, "no path from %v to %v\n", start, goal)
	} else {
		cells := make([]string, len(path))
		for i, pt := range path {
			cells[i] = pt.String()
		}
		fmt.Fprintf(out, "path: %s\n", strings.Join(cells, " "))
		fmt.Fprintf(out, "steps: %d cost: %.3f expanded: %d\n", len(path)-1, finder.Cost(path), finder.Expanded(f))
	}

	if opts.dump {
		if err := grid.Dump(out, path, opts.color); err != nil {
			return err
		}
	}

	if opts.walkStep > 0 && len(path) > 0 {
		info := models.PathToWalkInfo(path, opts.cellSize)
		for _, pos := range models.Walk(&info, opts.walkStep, maxWalkSteps) {
			fmt.Fprintf(out, "walk: %.2f,%.2f\n", pos.X, pos.Y)
		}
	}
	return nil
}
