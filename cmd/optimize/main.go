// Command optimize searches for fox and rabbit parameters under which both
// species coexist for as long as possible, using CMA-ES.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/warren/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 5000, "Step cap per simulation")
	depth := flag.Int("depth", 50, "Field rows per run")
	width := flag.Int("width", 50, "Field columns per run")
	seeds := flag.Int("seeds", 3, "Seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Evaluation budget")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	// Simulators log resets at Info
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if *outputDir == "" {
		slog.Error("--output is required")
		return 2
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		slog.Error("creating output directory", "error", err)
		return 1
	}
	if err := config.Init(*configPath); err != nil {
		slog.Error("loading config", "error", err)
		return 1
	}
	base := config.Cfg()

	params := NewParamVector()
	ev := &evaluator{
		params:   params,
		base:     base,
		maxSteps: *maxTicks,
		depth:    *depth,
		width:    *width,
		seeds:    make([]int64, *seeds),
	}
	for i := range ev.seeds {
		ev.seeds[i] = int64(42 + 1000*i)
	}

	s, err := newSearch(filepath.Join(*outputDir, "optimize_log.csv"), params, ev, *maxEvals)
	if err != nil {
		slog.Error("creating evaluation log", "error", err)
		return 1
	}
	defer s.close()

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3*math.Log(float64(params.Dim())))
	}

	fmt.Printf("CMA-ES over %d parameters: population=%d evals=%d seeds=%d steps=%d field=%dx%d\n",
		params.Dim(), popSize, *maxEvals, *seeds, *maxTicks, *depth, *width)

	result, err := optimize.Minimize(
		optimize.Problem{Func: s.objective},
		params.Normalize(params.ExtractFromConfig(base)),
		&optimize.Settings{FuncEvaluations: *maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize},
	)
	if err != nil {
		slog.Warn("optimization stopped", "error", err)
	}

	best := s.best
	if best == nil {
		if result == nil {
			slog.Error("no evaluation completed")
			return 1
		}
		best = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\n%d evaluations in %s, best fitness %.0f\n", s.evals, shortDuration(time.Since(s.start)), s.bestScore.Fitness)
	for i, p := range params.Specs {
		fmt.Printf("  %-28s %.6f\n", p.Name, best[i])
	}

	cfg := base.Clone()
	if err := params.ApplyToConfig(cfg, best); err != nil {
		slog.Error("best parameters are invalid", "error", err)
		return 1
	}
	out := filepath.Join(*outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(out); err != nil {
		slog.Error("writing best config", "error", err)
		return 1
	}
	fmt.Printf("best config: %s\n", out)
	return 0
}

// search records every evaluation the optimizer requests.
type search struct {
	params *ParamVector
	ev     *evaluator
	budget int

	file *os.File
	log  *csv.Writer

	start     time.Time
	evals     int
	best      []float64 // clamped raw values
	bestScore Score
}

func newSearch(path string, params *ParamVector, ev *evaluator, budget int) (*search, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	header := []string{"eval", "fitness", "coexist", "quality"}
	for _, p := range params.Specs {
		header = append(header, p.Name)
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return &search{
		params: params,
		ev:     ev,
		budget: budget,
		file:   f,
		log:    w,
		start:  time.Now(),
	}, nil
}

// objective evaluates a normalized vector. The log holds the clamped raw
// values, which are the ones the simulation actually ran with.
func (s *search) objective(x []float64) float64 {
	raw := s.params.Clamp(s.params.Denormalize(x))
	score := s.ev.Evaluate(raw)
	s.evals++

	if s.best == nil || score.Fitness < s.bestScore.Fitness {
		s.best = append([]float64(nil), raw...)
		s.bestScore = score
	}

	row := []string{
		strconv.Itoa(s.evals),
		strconv.FormatFloat(score.Fitness, 'f', 6, 64),
		strconv.FormatFloat(score.Coexist, 'f', 1, 64),
		strconv.FormatFloat(score.Quality, 'f', 4, 64),
	}
	for _, v := range raw {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := s.writeRow(row); err != nil {
		slog.Warn("writing evaluation log", "error", err)
	}

	elapsed := time.Since(s.start)
	eta := time.Duration(s.budget-s.evals) * (elapsed / time.Duration(s.evals))
	fmt.Printf("eval %d/%d coexist=%.0f quality=%.2f best=%.0f elapsed=%s eta=%s\n",
		s.evals, s.budget, score.Coexist, score.Quality, s.bestScore.Fitness,
		shortDuration(elapsed), shortDuration(eta))

	return score.Fitness
}

func (s *search) writeRow(row []string) error {
	if err := s.log.Write(row); err != nil {
		return err
	}
	s.log.Flush()
	return s.log.Error()
}

func (s *search) close() {
	s.log.Flush()
	if err := errors.Join(s.log.Error(), s.file.Close()); err != nil {
		slog.Warn("closing evaluation log", "error", err)
	}
}

// shortDuration renders d to the second, e.g. 4m05s or 1h02m00s.
func shortDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h, m, sec := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	return fmt.Sprintf("%dm%02ds", m, sec)
}
