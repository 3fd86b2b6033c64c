package gcbench

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrReportNotFound = errors.New("report file not found")
	ErrUnknownUnit    = errors.New("unknown duration unit")
)

// Metric keys recognised in a benchmark report.
const (
	KeyDuration        = "duration"
	KeyOpsPerSec       = "ops_per_sec"
	KeyTotalAlloc      = "total_alloc"
	KeyHeapAlloc       = "heap_alloc"
	KeyHeapObjects     = "heap_objects"
	KeyNumGC           = "num_gc"
	KeyTotalPause      = "total_pause"
	KeyAvgPause        = "avg_pause"
	KeyGCPauseOverhead = "gc_pause_overhead"
	KeyGCCPUFraction   = "gc_cpu_fraction"
	KeyTimePerIter     = "time_per_iter"
)

// durationValue matches what time.Duration.String prints, e.g. 350ms,
// 12.5µs or 1m2.5s.
const durationValue = `((?:[\d.]+(?:ns|us|µs|ms|s|m|h))+)`

var metricPatterns = []struct {
	key string
	re  *regexp.Regexp
}{
	{KeyDuration, regexp.MustCompile(`Total Duration:\s*` + durationValue)},
	{KeyOpsPerSec, regexp.MustCompile(`Operations/sec:\s*([\d.]+)`)},
	{KeyTotalAlloc, regexp.MustCompile(`Total Allocated:\s*([\d.]+)\s*MB`)},
	{KeyHeapAlloc, regexp.MustCompile(`Heap Allocated:\s*([\d.]+)\s*MB`)},
	{KeyHeapObjects, regexp.MustCompile(`Heap Objects:\s*(\d+)`)},
	{KeyNumGC, regexp.MustCompile(`Number of GCs:\s*(\d+)`)},
	{KeyTotalPause, regexp.MustCompile(`Total GC Pause:\s*` + durationValue)},
	{KeyAvgPause, regexp.MustCompile(`Average GC Pause:\s*` + durationValue)},
	{KeyGCPauseOverhead, regexp.MustCompile(`GC Pause Overhead:\s*([\d.]+)%`)},
	{KeyGCCPUFraction, regexp.MustCompile(`GC CPU Fraction:\s*([\d.]+)%`)},
	{KeyTimePerIter, regexp.MustCompile(`Time per iteration:\s*` + durationValue)},
}

// MetricSet maps a metric key to the raw value found in a report. Duration
// values keep their unit suffix. A missing key means the label was absent.
type MetricSet map[string]string

// ExtractMetrics returns the first match of every known metric label in
// content.
func ExtractMetrics(content string) MetricSet {
	ms := MetricSet{}
	for _, p := range metricPatterns {
		m := p.re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		ms[p.key] = m[1]
	}
	return ms
}

// Environment is the run header printed by the benchmark harness.
type Environment struct {
	GoVersion  string
	GOMAXPROCS string
	NumCPU     string
	MatrixSize string
	Iterations string
}

var (
	goVersionRE  = regexp.MustCompile(`Go Version:\s*(\S+)`)
	gomaxprocsRE = regexp.MustCompile(`GOMAXPROCS:\s*(\d+)`)
	numCPURE     = regexp.MustCompile(`NumCPU:\s*(\d+)`)
	matrixSizeRE = regexp.MustCompile(`Matrix Size:\s*(\d+x\d+)`)
	iterationsRE = regexp.MustCompile(`Iterations:\s*(\d+)`)
)

func ExtractEnvironment(content string) Environment {
	first := func(re *regexp.Regexp) string {
		m := re.FindStringSubmatch(content)
		if m == nil {
			return ""
		}
		return m[1]
	}
	return Environment{
		GoVersion:  first(goVersionRE),
		GOMAXPROCS: first(gomaxprocsRE),
		NumCPU:     first(numCPURE),
		MatrixSize: first(matrixSizeRE),
		Iterations: first(iterationsRE),
	}
}

func (e Environment) IsZero() bool {
	return e == Environment{}
}

// Report is everything extracted from one report file.
type Report struct {
	Path    string
	Metrics MetricSet
	Env     Environment
}

// ReadReportFile reads the whole file at path and extracts its metrics and
// environment header.
func ReadReportFile(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Report{}, fmt.Errorf("%s: %w", path, ErrReportNotFound)
	}
	if err != nil {
		return Report{}, fmt.Errorf("reading report %s: %w", path, err)
	}
	content := string(data)
	return Report{
		Path:    path,
		Metrics: ExtractMetrics(content),
		Env:     ExtractEnvironment(content),
	}, nil
}

func ReadMetricsFile(path string) (MetricSet, error) {
	r, err := ReadReportFile(path)
	if err != nil {
		return nil, err
	}
	return r.Metrics, nil
}

// ParseDurationMillis converts a duration string to milliseconds. Suffixes
// are tested longest first so that "ms" is never read as "s".
func ParseDurationMillis(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return 0, fmt.Errorf("%w: %q has no unit", ErrUnknownUnit, s)
	}
	var num string
	var factor float64
	switch {
	case strings.HasSuffix(s, "ms"):
		num, factor = strings.TrimSuffix(s, "ms"), 1
	case strings.HasSuffix(s, "µs"):
		num, factor = strings.TrimSuffix(s, "µs"), 1e-3
	case strings.HasSuffix(s, "us"):
		num, factor = strings.TrimSuffix(s, "us"), 1e-3
	case strings.HasSuffix(s, "ns"):
		num, factor = strings.TrimSuffix(s, "ns"), 1e-6
	case strings.HasSuffix(s, "s"):
		num, factor = strings.TrimSuffix(s, "s"), 1e3
	default:
		return parseCompoundMillis(s)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		// 1m2.5s and friends
		return parseCompoundMillis(s)
	}
	return v * factor, nil
}

func parseCompoundMillis(s string) (float64, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return float64(d) / float64(time.Millisecond), nil
}
