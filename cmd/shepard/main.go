// Command shepard runs the IDW/k-d-tree scattered-data interpolation
// pipeline: read known points, build a k-d tree over them, read unknown
// points, interpolate each unknown point's value from its k nearest
// known neighbors, and write the filled-in unknown points back out.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/spatial-idw/shepard/idw"
	"github.com/spatial-idw/shepard/kdtree"
	"github.com/spatial-idw/shepard/point"
	"github.com/spatial-idw/shepard/shepardconfig"
	"github.com/spatial-idw/shepard/shepardio"
)

type spatialPoint = point.Point[int, float64]

func main() {
	debugDir := flag.String("debug-dir", "", "if set, write each unknown point's used-neighbor list under this directory as nns/<point>.json or rnns/<point>.json")
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	os.Exit(run(logger, *debugDir))
}

func run(logger log.Logger, debugDir string) int {
	fmt.Printf("Рабочий каталог: %s\n", mustGetwd())

	defaults := shepardconfig.Default()
	fmt.Printf("Введите путь к конфигурационному файлу (пустая строка = %q):\n", defaults.ConfigFn)

	configPath, err := readLine(os.Stdin)
	if err != nil {
		level.Error(logger).Log("msg", "failed to read config path", "err", err)
		return 1
	}

	cfg, err := shepardconfig.LoadFile(configPath, defaults)
	if err != nil {
		level.Error(logger).Log("msg", "failed to read configuration", "err", err)
		return 1
	}

	known, err := shepardio.ReadPointsFile[int, float64](cfg.KnownPointsFn, shepardconfig.AxisNames, shepardconfig.ValueName, false)
	if err != nil || len(known) == 0 {
		level.Error(logger).Log("msg", "no known points", "err", err)
		return 1
	}

	tree, err := kdtree.Build[spatialPoint](known, false)
	if err != nil {
		level.Error(logger).Log("msg", "failed to build tree", "err", err)
		return 1
	}
	if tree.IsEmpty() {
		level.Error(logger).Log("msg", "tree is empty")
		return 1
	}

	unknown, err := shepardio.ReadPointsFile[int, float64](cfg.UnknownPointsFn, shepardconfig.AxisNames, shepardconfig.ValueName, true)
	if err != nil || len(unknown) == 0 {
		level.Error(logger).Log("msg", "no unknown points", "err", err)
		return 1
	}

	var dump *debugDumper
	if debugDir != "" {
		dump = newDebugDumper(debugDir, cfg.ReverseSearch, cfg.JSONIndent)
	}

	result := make([]spatialPoint, len(unknown))
	for i, p := range unknown {
		interpolated, neighbors, err := tree.ShepardInterpolation(p, int(cfg.NumNeighbors), cfg.IdwPower, false, cfg.ReverseSearch)
		if err != nil {
			level.Error(logger).Log("msg", "interpolation failed", "point", p.String(), "err", err)
			return 1
		}
		result[i] = interpolated

		if dump != nil {
			if err := dump.write(p, neighbors); err != nil {
				level.Error(logger).Log("msg", "debug dump failed", "point", p.String(), "err", err)
			}
		}
	}

	if err := shepardio.WritePointsFile[int, float64](cfg.OutputFn, result, shepardconfig.AxisNames, shepardconfig.ValueName, cfg.JSONIndent); err != nil {
		level.Error(logger).Log("msg", "failed to write output", "err", err)
		return 1
	}

	level.Info(logger).Log("msg", "done", "known", len(known), "unknown", len(unknown), "output", cfg.OutputFn)
	return 0
}

func readLine(r *os.File) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// debugDumper is the -debug-dir supplement: for each unknown point it
// writes the neighbor list used by ShepardInterpolation to
// <dir>/nns/<point>.json or <dir>/rnns/<point>.json.
type debugDumper struct {
	dir    string
	indent int
}

func newDebugDumper(base string, reverse bool, indent int) *debugDumper {
	sub := "nns"
	if reverse {
		sub = "rnns"
	}
	dir := filepath.Join(base, sub)
	_ = os.MkdirAll(dir, 0o755)
	return &debugDumper{dir: dir, indent: indent}
}

func (d *debugDumper) write(target spatialPoint, neighbors []idw.Neighbor[spatialPoint]) error {
	values := make([]spatialPoint, len(neighbors))
	for i, n := range neighbors {
		values[i] = n.Value
	}
	filename := filepath.Join(d.dir, target.String()+".json")
	return shepardio.WritePointsFile[int, float64](filename, values, shepardconfig.AxisNames, shepardconfig.ValueName, d.indent)
}
