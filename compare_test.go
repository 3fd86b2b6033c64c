package gcbench_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thiagonache/gcbench"
)

func TestImprovement_LowerBaselineIsPositive(t *testing.T) {
	t.Parallel()
	got, ok := gcbench.Improvement("200", "150")
	if !ok {
		t.Fatal("want defined improvement")
	}
	if got != 25 {
		t.Errorf("want 25, got %v", got)
	}
}

func TestImprovement_StripsUnits(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		baseline, candidate string
		want                float64
	}{
		{"10.00%", "8.00%", 20},
		{"12.50 MB", "10.00 MB", 20},
		{"40ms", "30ms", 25},
		{"200µs", "150µs", 25},
		{"1.2s", "900ms", 25},
		{"1m", "45s", 25},
	}
	for _, tc := range tcs {
		got, ok := gcbench.Improvement(tc.baseline, tc.candidate)
		if !ok {
			t.Errorf("%q -> %q: want defined improvement", tc.baseline, tc.candidate)
			continue
		}
		if math.Abs(tc.want-got) > 1e-9 {
			t.Errorf("%q -> %q: want %v, got %v", tc.baseline, tc.candidate, tc.want, got)
		}
	}
}

func TestImprovement_ZeroBaselineIsUndefined(t *testing.T) {
	t.Parallel()
	for _, baseline := range []string{"0", "0.00%", "0ms"} {
		_, ok := gcbench.Improvement(baseline, "5")
		if ok {
			t.Errorf("%q: want undefined improvement for zero baseline", baseline)
		}
	}
}

func TestImprovement_UnparsableValueIsUndefined(t *testing.T) {
	t.Parallel()
	inputs := [][2]string{
		{"abc", "10"},
		{"10", "abc"},
		{"", "10"},
	}
	for _, in := range inputs {
		_, ok := gcbench.Improvement(in[0], in[1])
		if ok {
			t.Errorf("%q -> %q: want undefined improvement", in[0], in[1])
		}
	}
}

func TestNewChange_LowerIsBetterMarksDecreaseFavorable(t *testing.T) {
	t.Parallel()
	d := gcbench.MetricDescriptor{Name: "Number of GCs", Key: gcbench.KeyNumGC, Direction: gcbench.LowerIsBetter}
	got := gcbench.NewChange(d, "200", "150")
	want := gcbench.Change{
		MetricDescriptor: d,
		Baseline:         "200",
		Candidate:        "150",
		Improvement:      25,
		Displayed:        25,
		Favorable:        true,
		Defined:          true,
	}
	if !cmp.Equal(want, got) {
		t.Error(cmp.Diff(want, got))
	}
	if got.ChangeString() != "+25.00% ✓" {
		t.Errorf("want %q, got %q", "+25.00% ✓", got.ChangeString())
	}
}

func TestNewChange_HigherIsBetterInvertsSign(t *testing.T) {
	t.Parallel()
	d := gcbench.MetricDescriptor{Name: "Operations/sec", Key: gcbench.KeyOpsPerSec, Direction: gcbench.HigherIsBetter}
	got := gcbench.NewChange(d, "100", "150")
	if !got.Defined {
		t.Fatal("want defined change")
	}
	if got.Displayed != 50 {
		t.Errorf("want displayed +50, got %v", got.Displayed)
	}
	if !got.Favorable {
		t.Error("want higher candidate throughput to be favorable")
	}
	if got.ChangeString() != "+50.00% ✓" {
		t.Errorf("want %q, got %q", "+50.00% ✓", got.ChangeString())
	}
}

func TestNewChange_HigherIsBetterDecreaseIsNotFavorable(t *testing.T) {
	t.Parallel()
	d := gcbench.MetricDescriptor{Name: "Operations/sec", Key: gcbench.KeyOpsPerSec, Direction: gcbench.HigherIsBetter}
	got := gcbench.NewChange(d, "100", "80")
	if got.Favorable {
		t.Error("want lower throughput to be unfavorable")
	}
	if got.ChangeString() != "-20.00%" {
		t.Errorf("want %q, got %q", "-20.00%", got.ChangeString())
	}
}

func TestNewChange_NeutralIsNeverFavorable(t *testing.T) {
	t.Parallel()
	d := gcbench.MetricDescriptor{Name: "Heap Allocated", Key: gcbench.KeyHeapAlloc, Direction: gcbench.Neutral}
	got := gcbench.NewChange(d, "12.50", "10.00")
	if got.Favorable {
		t.Error("want neutral metric never marked favorable")
	}
	if got.ChangeString() != "+20.00%" {
		t.Errorf("want %q, got %q", "+20.00%", got.ChangeString())
	}
}

func TestNewChange_UndefinedShowsNotApplicable(t *testing.T) {
	t.Parallel()
	d := gcbench.MetricDescriptor{Name: "Number of GCs", Key: gcbench.KeyNumGC, Direction: gcbench.LowerIsBetter}
	got := gcbench.NewChange(d, "0", "10")
	if got.Defined {
		t.Error("want undefined change for zero baseline")
	}
	if got.ChangeString() != "N/A" {
		t.Errorf("want N/A, got %q", got.ChangeString())
	}
}

func TestNewComparison_ErrorsIfBaselineIsEmpty(t *testing.T) {
	t.Parallel()
	_, err := gcbench.NewComparison(gcbench.MetricSet{}, gcbench.MetricSet{gcbench.KeyNumGC: "1"})
	if !errors.Is(err, gcbench.ErrEmptyMetrics) {
		t.Fatalf("want error ErrEmptyMetrics got %v", err)
	}
}

func TestNewComparison_ErrorsIfCandidateIsEmpty(t *testing.T) {
	t.Parallel()
	_, err := gcbench.NewComparison(gcbench.MetricSet{gcbench.KeyNumGC: "1"}, nil)
	if !errors.Is(err, gcbench.ErrEmptyMetrics) {
		t.Fatalf("want error ErrEmptyMetrics got %v", err)
	}
}

func TestNewComparison_WithNilStdoutReturnsErrorValueCannotBeNil(t *testing.T) {
	t.Parallel()
	_, err := gcbench.NewComparison(
		gcbench.MetricSet{gcbench.KeyNumGC: "2"},
		gcbench.MetricSet{gcbench.KeyNumGC: "1"},
		gcbench.WithStdout(nil),
	)
	if !errors.Is(err, gcbench.ErrValueCannotBeNil) {
		t.Errorf("want ErrValueCannotBeNil error if stdout is nil, got %v", err)
	}
}

func TestNewComparison_WithNilStderrReturnsErrorValueCannotBeNil(t *testing.T) {
	t.Parallel()
	_, err := gcbench.NewComparison(
		gcbench.MetricSet{gcbench.KeyNumGC: "2"},
		gcbench.MetricSet{gcbench.KeyNumGC: "1"},
		gcbench.WithStderr(nil),
	)
	if !errors.Is(err, gcbench.ErrValueCannotBeNil) {
		t.Errorf("want ErrValueCannotBeNil error if stderr is nil, got %v", err)
	}
}

func TestChanges_FollowsDescriptorOrderAndSkipsOneSidedMetrics(t *testing.T) {
	t.Parallel()
	c, err := gcbench.NewComparison(
		gcbench.MetricSet{
			gcbench.KeyTimePerIter: "50ms",
			gcbench.KeyNumGC:       "200",
			gcbench.KeyDuration:    "2s",
		},
		gcbench.MetricSet{
			gcbench.KeyTimePerIter: "40ms",
			gcbench.KeyDuration:    "1.5s",
			gcbench.KeyHeapAlloc:   "10.00",
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, ch := range c.Changes() {
		got = append(got, ch.Key)
	}
	want := []string{gcbench.KeyDuration, gcbench.KeyTimePerIter}
	if !cmp.Equal(want, got) {
		t.Error(cmp.Diff(want, got))
	}
}

func TestHeadline_MissingMetricIsUndefined(t *testing.T) {
	t.Parallel()
	c, err := gcbench.NewComparison(
		gcbench.MetricSet{gcbench.KeyGCCPUFraction: "10.00"},
		gcbench.MetricSet{gcbench.KeyDuration: "1s"},
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Headline(gcbench.KeyGCCPUFraction); ok {
		t.Error("want undefined headline when candidate lacks the metric")
	}
}
