package gcbench

import (
	"strings"
)

// Bucket grades the GC CPU fraction improvement.
type Bucket int

const (
	Limited Bucket = iota
	Small
	Moderate
	Good
	Excellent
)

// Classify buckets a GC CPU fraction improvement. Lower bounds are
// inclusive; an undefined improvement is Limited.
func Classify(improvement float64, ok bool) Bucket {
	switch {
	case !ok || improvement <= 0:
		return Limited
	case improvement >= 30:
		return Excellent
	case improvement >= 15:
		return Good
	case improvement >= 5:
		return Moderate
	default:
		return Small
	}
}

func (b Bucket) String() string {
	switch b {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Moderate:
		return "moderate"
	case Small:
		return "small"
	default:
		return "limited"
	}
}

func (b Bucket) Headline() string {
	switch b {
	case Excellent:
		return "🌟 Excellent! Green Tea shows significant GC improvement (>30%)"
	case Good:
		return "✅ Good! Green Tea shows solid GC improvement (15-30%)"
	case Moderate:
		return "👍 Moderate improvement from Green Tea (5-15%)"
	case Small:
		return "📊 Small improvement from Green Tea (<5%)"
	default:
		return "⚠️  Limited or no improvement observed."
	}
}

func (b Bucket) Advice() []string {
	if b == Limited {
		return []string{
			"This workload may not benefit significantly from Green Tea.",
			"Consider:",
			"  - Increasing matrix size for more objects per page",
			"  - Different allocation patterns",
			"  - Your specific workload characteristics",
		}
	}
	return []string{
		"",
		"This workload benefits from Green Tea's page-based scanning approach.",
		"The regular object sizes and allocation patterns allow effective page accumulation.",
	}
}

var (
	wideRule  = strings.Repeat("=", 80)
	tableRule = strings.Repeat("-", 95)
)

// WriteReport prints the comparison table, summary, legend and analysis to
// c.Stdout.
func (c Comparison) WriteReport() {
	c.section("DETAILED GC BENCHMARK COMPARISON")
	c.writeEnvironment()
	c.writeTable()
	c.LogFStdOut("\n")

	c.section("SUMMARY")
	cpu, cpuOK := c.Headline(KeyGCCPUFraction)
	if cpuOK {
		c.LogFStdOut("🎯 GC CPU Time Reduction: %.2f%%\n", cpu)
	}
	if v, ok := c.Headline(KeyDuration); ok {
		c.LogFStdOut("⚡ Overall Performance Improvement: %.2f%%\n", v)
	}
	if v, ok := c.Headline(KeyTotalPause); ok {
		c.LogFStdOut("⏸️  GC Pause Reduction: %.2f%%\n", v)
	}
	c.LogFStdOut("\n")
	c.LogFStdOut("Legend:\n")
	c.LogFStdOut("  ✓ = Improved in desired direction\n")
	c.LogFStdOut("  Lower is better for: Duration, GC metrics, Pause times\n")
	c.LogFStdOut("  Higher is better for: Operations/sec\n")
	c.LogFStdOut("\n")

	c.section("ANALYSIS")
	bucket := Classify(cpu, cpuOK)
	c.LogFStdOut("%s\n", bucket.Headline())
	for _, line := range bucket.Advice() {
		c.LogFStdOut("%s\n", line)
	}
	c.LogFStdOut("\n")
}

func (c Comparison) section(title string) {
	c.LogFStdOut("%s\n%s\n%s\n\n", wideRule, title, wideRule)
}

func (c Comparison) writeTable() {
	c.LogFStdOut("%-30s | %-20s | %-20s | %-15s\n", "Metric", "Standard GC", "Green Tea GC", "Change")
	c.LogFStdOut("%s\n", tableRule)
	for _, ch := range c.Changes() {
		c.LogFStdOut("%-30s | %-20s | %-20s | %-15s\n", ch.Name, ch.Baseline, ch.Candidate, ch.ChangeString())
	}
}

func (c Comparison) writeEnvironment() {
	if c.BaselineEnv.IsZero() && c.CandidateEnv.IsZero() {
		return
	}
	rows := []struct {
		name     string
		from, to string
	}{
		{"Go Version", c.BaselineEnv.GoVersion, c.CandidateEnv.GoVersion},
		{"GOMAXPROCS", c.BaselineEnv.GOMAXPROCS, c.CandidateEnv.GOMAXPROCS},
		{"NumCPU", c.BaselineEnv.NumCPU, c.CandidateEnv.NumCPU},
		{"Matrix Size", c.BaselineEnv.MatrixSize, c.CandidateEnv.MatrixSize},
		{"Iterations", c.BaselineEnv.Iterations, c.CandidateEnv.Iterations},
	}
	c.LogFStdOut("%-30s | %-20s | %-20s\n", "Environment", "Standard GC", "Green Tea GC")
	c.LogFStdOut("%s\n", tableRule)
	for _, r := range rows {
		if r.from == "" && r.to == "" {
			continue
		}
		c.LogFStdOut("%-30s | %-20s | %-20s\n", r.name, orDash(r.from), orDash(r.to))
	}
	c.LogFStdOut("\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
