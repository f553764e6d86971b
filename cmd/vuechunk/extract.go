package main

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mx-llm/vuechunk/pkg/scanner"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract component metadata and write the JSON snapshot",
	Long: `Discover .vue files under the root, extract every TypeScript class-style
component and write all descriptors as one JSON array.

Files that cannot be read or parsed are reported and skipped. A missing
root yields an empty snapshot. Once settings are valid, the command fails
only if writing the snapshot fails.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

var (
	extractRoot   string
	extractOut    string
	extractConfig string
	extractQuiet  bool
)

func init() {
	extractCmd.Flags().StringVar(&extractRoot, "root", "", "Directory to scan (default \".\")")
	extractCmd.Flags().StringVar(&extractOut, "out", "", "Snapshot file to write (default \"vue_chunks_ast.json\")")
	extractCmd.Flags().StringVar(&extractConfig, "config", "", "Config file (default \".vuechunk.yaml\" if present)")
	extractCmd.Flags().BoolVarP(&extractQuiet, "quiet", "q", false, "Suppress progress output and non-error logs")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig(extractConfig)
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cfg, extractRoot, extractOut)
	if err != nil {
		return err
	}

	logger := newLogger(extractQuiet)
	s := scanner.NewScanner(settings.Options, logger)
	defer s.Close()

	progress := newProgressReporter(extractQuiet, cmd.ErrOrStderr())
	report, err := s.Run(cmd.Context(), settings.Root, progress.OnFileProcessed)
	progress.Finish()
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	descriptors := report.Descriptors()
	if err := scanner.WriteJSON(settings.Out, descriptors); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !extractQuiet {
		printRunSummary(out, report)
	}
	fmt.Fprintf(out, "Extracted %d components → %s\n", len(descriptors), settings.Out)
	return nil
}

// printRunSummary lists failed files and the run counters.
func printRunSummary(w io.Writer, report *scanner.Report) {
	for _, f := range report.Failures() {
		fmt.Fprintf(w, "  failed  %s: %v\n", f.Path, f.Err)
	}
	st := report.Stats
	fmt.Fprintf(w, "Scanned %d files: %d extracted, %d skipped, %d failed (%dms)\n",
		st.FilesDiscovered, st.FilesExtracted, st.FilesSkipped, st.FilesFailed, st.TotalTimeMs)
}

// progressReporter renders a progress bar for an extraction run.
// The bar is created on the first callback, once the total is known.
type progressReporter struct {
	quiet bool
	w     io.Writer
	bar   *progressbar.ProgressBar
}

func newProgressReporter(quiet bool, w io.Writer) *progressReporter {
	return &progressReporter{quiet: quiet, w: w}
}

// OnFileProcessed implements scanner.ProgressCallback.
func (p *progressReporter) OnFileProcessed(done, total int, currentFile string) {
	if p.quiet {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription("Extracting components"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(p.w)
			}),
		)
	}
	_ = p.bar.Set(done)
}

// Finish completes the bar if one was started.
func (p *progressReporter) Finish() {
	if p.bar != nil && !p.bar.IsFinished() {
		_ = p.bar.Finish()
	}
}
