package gcbench

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var (
	ErrResultsDirNotFound = errors.New("results directory not found")
	ErrUnparsableResults  = errors.New("could not parse benchmark results")
)

// RunCLI runs the gcbenchcmp command with args, writing to the process
// stdout and stderr.
func RunCLI(args []string) error {
	cmd := NewRootCmd(os.Stdout, os.Stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		cfgFile string
		flags   Config
	)
	cmd := &cobra.Command{
		Use:   "gcbenchcmp",
		Short: "Compare standard GC and Green Tea GC benchmark reports",
		Long: "Reads " + DefaultResultsDir + "/" + DefaultBaselineFile + " and " +
			DefaultResultsDir + "/" + DefaultCandidateFile +
			", prints a metric comparison table, a summary and an analysis.",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return err
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := DefaultConfig()
			if cfgFile != "" {
				loaded, err := LoadConfig(cfgFile)
				if err != nil {
					fmt.Fprintf(stderr, "Error: %v\n", err)
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("dir") {
				cfg.ResultsDir = flags.ResultsDir
			}
			if cmd.Flags().Changed("baseline") {
				cfg.BaselineFile = flags.BaselineFile
			}
			if cmd.Flags().Changed("candidate") {
				cfg.CandidateFile = flags.CandidateFile
			}
			if cmd.Flags().Changed("chart") {
				cfg.Chart = flags.Chart
			}
			return Run(cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		return err
	})
	cmd.Flags().StringVar(&cfgFile, "config", "", "YAML config file")
	cmd.Flags().StringVar(&flags.ResultsDir, "dir", DefaultResultsDir, "directory holding the benchmark reports")
	cmd.Flags().StringVar(&flags.BaselineFile, "baseline", DefaultBaselineFile, "standard GC report file name")
	cmd.Flags().StringVar(&flags.CandidateFile, "candidate", DefaultCandidateFile, "Green Tea GC report file name")
	cmd.Flags().StringVar(&flags.Chart, "chart", "", "also save a bar chart of the changes to this image file")
	return cmd
}

// Run checks the results directory, reads both reports and prints the
// comparison. Every failure is reported on stderr before it is returned.
func Run(cfg *Config, stdout, stderr io.Writer) error {
	info, err := os.Stat(cfg.ResultsDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return fmt.Errorf("checking results directory %s: %w", cfg.ResultsDir, err)
	}
	if err != nil || !info.IsDir() {
		fmt.Fprintf(stderr, "Error: %s directory not found\n", cfg.ResultsDir)
		fmt.Fprintln(stderr, "Please run ./run_benchmark.sh first")
		return fmt.Errorf("%s: %w", cfg.ResultsDir, ErrResultsDirNotFound)
	}
	baseline, berr := readReport(cfg.BaselinePath(), stderr)
	candidate, cerr := readReport(cfg.CandidatePath(), stderr)
	if err := errors.Join(berr, cerr); err != nil {
		fmt.Fprintln(stderr, "Error: Could not parse benchmark results")
		return err
	}
	comparison, err := NewComparison(baseline.Metrics, candidate.Metrics,
		WithStdout(stdout),
		WithStderr(stderr),
		WithEnvironments(baseline.Env, candidate.Env),
	)
	if err != nil {
		fmt.Fprintln(stderr, "Error: Could not parse benchmark results")
		return fmt.Errorf("%w: %w", ErrUnparsableResults, err)
	}
	comparison.WriteReport()
	if cfg.Chart == "" {
		return nil
	}
	if err := comparison.WriteChart(cfg.Chart); err != nil {
		comparison.LogFStdErr("Error: %v\n", err)
		return err
	}
	comparison.LogFStdOut("Chart saved to %s\n", cfg.Chart)
	return nil
}

func readReport(path string, stderr io.Writer) (Report, error) {
	r, err := ReadReportFile(path)
	if errors.Is(err, ErrReportNotFound) {
		fmt.Fprintf(stderr, "Error: %s not found\n", path)
		return r, err
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return r, err
}
