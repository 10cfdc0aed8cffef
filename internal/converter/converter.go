package converter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"heifconv/internal/codec"
	"heifconv/internal/discovery"
	"heifconv/internal/history"
	"heifconv/internal/logging"
	"heifconv/internal/quality"
	"heifconv/internal/report"
)

// Recorder receives the outcome of a run. The history store implements it.
type Recorder interface {
	BeginRun(ctx context.Context, inputDir, format string) (string, error)
	RecordConversion(ctx context.Context, runID string, entry history.Entry) error
	FinishRun(ctx context.Context, runID string, converted, failed int) error
}

// Options configures a Converter.
type Options struct {
	InputDir     string
	Target       codec.Target
	JPEGQuality  int
	PreserveExif bool

	// Decode reads the source images. Defaults to codec.DecodeHEIF.
	Decode codec.DecodeFunc

	Reporter *report.Reporter
	Recorder Recorder
	Logger   *slog.Logger
}

// Result is the outcome of one source file.
type Result struct {
	Source      discovery.Source
	Output      string
	Preserved   float64
	OutputBytes int64
	Duration    time.Duration
	Err         error
}

// Summary collects the results of a run.
type Summary struct {
	RunID     string
	OutputDir string
	Results   []Result
}

// Converted returns the number of successful conversions.
func (s Summary) Converted() int {
	var n int
	for _, r := range s.Results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of failed conversions.
func (s Summary) Failed() int {
	return len(s.Results) - s.Converted()
}

// Converter converts every HEIF file of one directory.
type Converter struct {
	opts   Options
	logger *slog.Logger
}

// New returns a Converter. Missing collaborators get defaults.
func New(opts Options) *Converter {
	if opts.Decode == nil {
		opts.Decode = codec.DecodeHEIF
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = codec.DefaultJPEGQuality
	}
	if opts.Reporter == nil {
		opts.Reporter = report.New(os.Stdout)
	}
	return &Converter{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "converter"),
	}
}

// OutputDir returns the directory converted files are written to.
func OutputDir(inputDir, token string) string {
	return filepath.Join(inputDir, filepath.Base(inputDir)+"-"+token)
}

// OutputPath returns the output file path for src.
func OutputPath(outputDir string, src discovery.Source, target codec.Target) string {
	return filepath.Join(outputDir, src.Stem()+target.Extension())
}

// Run converts every discovered file. Per-file failures are reported and
// counted; only a listing failure, an output directory failure, or context
// cancellation ends the run with an error.
func (c *Converter) Run(ctx context.Context) (Summary, error) {
	inputDir, err := filepath.Abs(c.opts.InputDir)
	if err != nil {
		return Summary{}, fmt.Errorf("resolve input directory: %w", err)
	}
	summary := Summary{OutputDir: OutputDir(inputDir, c.opts.Target.Token)}
	c.opts.Reporter.Header(inputDir, c.opts.Target.Token)

	sources, err := discovery.Find(inputDir)
	if err != nil {
		return summary, err
	}
	if len(sources) == 0 {
		c.opts.Reporter.NoFiles()
		c.logger.Debug("no heif files found", logging.String("input_dir", inputDir))
		return summary, nil
	}

	if err := os.MkdirAll(summary.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("create output directory: %w", err)
	}
	c.opts.Reporter.Found(len(sources))

	logger := c.logger
	summary.RunID = c.beginRun(ctx, inputDir)
	if summary.RunID != "" {
		logger = logger.With(logging.String(logging.FieldRunID, summary.RunID))
	}
	logger.Info("conversion run started",
		logging.String("input_dir", inputDir),
		logging.String("output_dir", summary.OutputDir),
		logging.String("format", c.opts.Target.Token),
		logging.Int("files", len(sources)),
	)

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			c.finishRun(ctx, logger, summary)
			return summary, err
		}
		result := c.convertOne(logger, summary.OutputDir, src)
		summary.Results = append(summary.Results, result)

		if result.Err != nil {
			c.opts.Reporter.Failed(src.Name, result.Err)
		} else {
			c.opts.Reporter.Converted(src.Name, filepath.Base(result.Output), result.Preserved)
		}
		c.record(ctx, logger, summary.RunID, result)
	}

	c.finishRun(ctx, logger, summary)
	c.opts.Reporter.Summary(summaryRows(summary.Results))
	logger.Info("conversion run finished",
		logging.Int("converted", summary.Converted()),
		logging.Int("failed", summary.Failed()),
	)
	return summary, nil
}

func (c *Converter) convertOne(logger *slog.Logger, outputDir string, src discovery.Source) Result {
	start := time.Now()
	output := OutputPath(outputDir, src, c.opts.Target)
	result := Result{Source: src, Output: output}
	fileLogger := logger.With(logging.String(logging.FieldFile, src.Name))

	preserved, err := c.convert(fileLogger, src, output)
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err
		fileLogger.Debug("conversion failed",
			logging.String("failure", FailureKind(err)),
			logging.Error(err),
		)
		return result
	}

	result.Preserved = preserved
	if info, statErr := os.Stat(output); statErr == nil {
		result.OutputBytes = info.Size()
	}
	fileLogger.Debug("conversion complete",
		logging.String("output", output),
		logging.Float64("preserved", preserved),
		logging.Duration("duration", result.Duration),
	)
	return result
}

// convert performs decode, encode, and measurement for one file. Any output
// written before a failure is removed.
func (c *Converter) convert(logger *slog.Logger, src discovery.Source, output string) (float64, error) {
	img, err := codec.DecodeFile(src.Path, c.opts.Decode)
	if err != nil {
		return 0, Wrap(ErrDecode, "decode", "read source", "", err)
	}

	if c.opts.Target.Lossless() {
		if err := codec.EncodeFile(output, img, c.opts.Target, codec.EncodeOptions{}); err != nil {
			return 0, Wrap(ErrEncode, "encode", "write png", filepath.Base(output), err)
		}
		return 100, nil
	}

	encodeOpts := codec.EncodeOptions{JPEGQuality: c.opts.JPEGQuality}
	if c.opts.PreserveExif {
		encodeOpts.Exif = c.sourceExif(logger, src)
	}
	if err := codec.EncodeFile(output, codec.ToRGB(img), c.opts.Target, encodeOpts); err != nil {
		return 0, Wrap(ErrEncode, "encode", "write jpeg", filepath.Base(output), err)
	}

	preserved, err := c.measure(src, output)
	if err != nil {
		removeOutput(logger, output)
		return 0, err
	}
	return preserved, nil
}

// removeOutput deletes the output of a failed conversion.
func removeOutput(logger *slog.Logger, output string) {
	if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
		logging.WarnWithContext(logger, "failed output not removed", "output_cleanup_failed",
			logging.String("output", output),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the file manually"),
			logging.String(logging.FieldImpact, "a partial output file remains in the output directory"),
		)
	}
}

// measure re-reads both files from disk and compares them.
func (c *Converter) measure(src discovery.Source, output string) (float64, error) {
	original, err := codec.DecodeFile(src.Path, c.opts.Decode)
	if err != nil {
		return 0, Wrap(ErrMeasure, "measure", "re-read source", "", err)
	}
	converted, err := codec.DecodeFile(output, codec.DecodeAny)
	if err != nil {
		return 0, Wrap(ErrMeasure, "measure", "re-read output", "", err)
	}
	preserved, err := quality.Preserved(codec.ToRGB(original), converted)
	if err != nil {
		return 0, Wrap(ErrMeasure, "measure", "ssim", "", err)
	}
	return preserved, nil
}

func (c *Converter) sourceExif(logger *slog.Logger, src discovery.Source) []byte {
	exif, err := codec.ExtractExif(src.Path)
	if err != nil {
		logging.WarnWithContext(logger, "exif not copied; output written without metadata", "exif_extract_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "converted file lacks camera metadata"),
		)
		return nil
	}
	if len(exif) == 0 {
		return nil
	}
	block, err := codec.NormalizeExif(exif)
	if err != nil {
		logging.WarnWithContext(logger, "exif not copied; output written without metadata", "exif_unusable",
			logging.Error(err),
			logging.String(logging.FieldImpact, "converted file lacks camera metadata"),
		)
		return nil
	}
	return block
}

func (c *Converter) beginRun(ctx context.Context, inputDir string) string {
	if c.opts.Recorder == nil {
		return ""
	}
	id, err := c.opts.Recorder.BeginRun(ctx, inputDir, c.opts.Target.Token)
	if err != nil {
		logging.WarnWithContext(c.logger, "history run not recorded", "history_begin_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "this run will not appear in heifconv history"),
		)
		return ""
	}
	return id
}

func (c *Converter) record(ctx context.Context, logger *slog.Logger, runID string, result Result) {
	if c.opts.Recorder == nil || runID == "" {
		return
	}
	entry := history.Entry{
		Source:    result.Source.Name,
		Status:    history.StatusConverted,
		Preserved: result.Preserved,
		Duration:  result.Duration,
	}
	if result.Err != nil {
		entry.Status = history.StatusFailed
		entry.Error = result.Err.Error()
	} else {
		entry.Output = filepath.Base(result.Output)
	}
	if err := c.opts.Recorder.RecordConversion(ctx, runID, entry); err != nil {
		logging.WarnWithContext(logger, "history entry not recorded", "history_record_failed",
			logging.String(logging.FieldFile, result.Source.Name),
			logging.Error(err),
		)
	}
}

func (c *Converter) finishRun(ctx context.Context, logger *slog.Logger, summary Summary) {
	if c.opts.Recorder == nil || summary.RunID == "" {
		return
	}
	// The run is closed even when ctx was cancelled mid-batch.
	if err := c.opts.Recorder.FinishRun(context.WithoutCancel(ctx), summary.RunID, summary.Converted(), summary.Failed()); err != nil {
		logging.WarnWithContext(logger, "history run not finalized", "history_finish_failed", logging.Error(err))
	}
}

func summaryRows(results []Result) []report.Row {
	rows := make([]report.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, report.Row{
			Source:      r.Source.Name,
			Output:      filepath.Base(r.Output),
			OutputBytes: r.OutputBytes,
			Preserved:   r.Preserved,
			Err:         r.Err,
		})
	}
	return rows
}
