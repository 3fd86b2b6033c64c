package gcbench

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	ErrEmptyMetrics     = errors.New("metrics cannot be empty")
	ErrValueCannotBeNil = errors.New("value cannot be nil")
)

// Direction says which way a metric has to move to count as an improvement.
type Direction int

const (
	LowerIsBetter Direction = iota
	HigherIsBetter
	Neutral
)

func (d Direction) String() string {
	switch d {
	case LowerIsBetter:
		return "lower"
	case HigherIsBetter:
		return "higher"
	default:
		return "neutral"
	}
}

type MetricDescriptor struct {
	Name      string
	Key       string
	Direction Direction
}

// Descriptors lists every compared metric in report order.
var Descriptors = []MetricDescriptor{
	{"Total Duration", KeyDuration, LowerIsBetter},
	{"Operations/sec", KeyOpsPerSec, HigherIsBetter},
	{"Total Memory Allocated", KeyTotalAlloc, Neutral},
	{"Heap Allocated", KeyHeapAlloc, Neutral},
	{"Heap Objects", KeyHeapObjects, Neutral},
	{"Number of GCs", KeyNumGC, LowerIsBetter},
	{"Total GC Pause", KeyTotalPause, LowerIsBetter},
	{"Average GC Pause", KeyAvgPause, LowerIsBetter},
	{"GC Pause Overhead", KeyGCPauseOverhead, LowerIsBetter},
	{"GC CPU Fraction", KeyGCCPUFraction, LowerIsBetter},
	{"Time per Iteration", KeyTimePerIter, LowerIsBetter},
}

// Improvement returns (baseline - candidate) / baseline * 100. ok is false
// when either value does not parse or the baseline is zero.
func Improvement(baseline, candidate string) (improvement float64, ok bool) {
	b, err := numericValue(baseline)
	if err != nil {
		return 0, false
	}
	c, err := numericValue(candidate)
	if err != nil {
		return 0, false
	}
	if b == 0 {
		return 0, false
	}
	improvement = (b - c) / b * 100
	if math.IsNaN(improvement) || math.IsInf(improvement, 0) {
		return 0, false
	}
	return improvement, true
}

// numericValue strips percent and size units. Anything left with a unit is
// taken as a duration and normalised to milliseconds.
func numericValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "MB"))
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v, nil
	}
	return ParseDurationMillis(s)
}

// Change is the comparison of one metric between the two runs.
type Change struct {
	MetricDescriptor
	Baseline, Candidate string
	// Improvement is the raw (baseline - candidate) / baseline percentage.
	Improvement float64
	// Displayed is Improvement with the sign flipped for higher-is-better
	// metrics, so a positive value always reads as "better".
	Displayed float64
	Favorable bool
	Defined   bool
}

func NewChange(d MetricDescriptor, baseline, candidate string) Change {
	c := Change{
		MetricDescriptor: d,
		Baseline:         baseline,
		Candidate:        candidate,
	}
	imp, ok := Improvement(baseline, candidate)
	if !ok {
		return c
	}
	c.Defined = true
	c.Improvement = imp
	c.Displayed = imp
	switch d.Direction {
	case LowerIsBetter:
		c.Favorable = imp > 0
	case HigherIsBetter:
		c.Displayed = -imp
		c.Favorable = imp < 0
	}
	return c
}

// ChangeString formats the displayed change as shown in the report table.
func (c Change) ChangeString() string {
	if !c.Defined {
		return "N/A"
	}
	s := fmt.Sprintf("%+.2f%%", c.Displayed)
	if c.Favorable {
		s += " ✓"
	}
	return s
}

type Comparison struct {
	Baseline, Candidate       MetricSet
	BaselineEnv, CandidateEnv Environment
	Stdout, Stderr            io.Writer
}

type Option func(*Comparison) error

func NewComparison(baseline, candidate MetricSet, opts ...Option) (*Comparison, error) {
	if len(baseline) == 0 || len(candidate) == 0 {
		return nil, ErrEmptyMetrics
	}
	c := &Comparison{
		Baseline:  baseline,
		Candidate: candidate,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
	for _, o := range opts {
		err := o(c)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func WithStdout(w io.Writer) Option {
	return func(c *Comparison) error {
		if w == nil {
			return ErrValueCannotBeNil
		}
		c.Stdout = w
		return nil
	}
}

func WithStderr(w io.Writer) Option {
	return func(c *Comparison) error {
		if w == nil {
			return ErrValueCannotBeNil
		}
		c.Stderr = w
		return nil
	}
}

func WithEnvironments(baseline, candidate Environment) Option {
	return func(c *Comparison) error {
		c.BaselineEnv = baseline
		c.CandidateEnv = candidate
		return nil
	}
}

// Changes returns one Change per metric found in both runs, in Descriptors
// order.
func (c Comparison) Changes() []Change {
	var changes []Change
	for _, d := range Descriptors {
		b, ok := c.Baseline[d.Key]
		if !ok {
			continue
		}
		cand, ok := c.Candidate[d.Key]
		if !ok {
			continue
		}
		changes = append(changes, NewChange(d, b, cand))
	}
	return changes
}

// Headline returns the raw improvement for key, if both runs have it and it
// can be computed.
func (c Comparison) Headline(key string) (float64, bool) {
	b, ok := c.Baseline[key]
	if !ok {
		return 0, false
	}
	cand, ok := c.Candidate[key]
	if !ok {
		return 0, false
	}
	return Improvement(b, cand)
}

func (c Comparison) LogFStdErr(msg string, opts ...interface{}) {
	fmt.Fprintf(c.Stderr, msg, opts...)
}

func (c Comparison) LogFStdOut(msg string, opts ...interface{}) {
	fmt.Fprintf(c.Stdout, msg, opts...)
}
