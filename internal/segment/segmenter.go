package segment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"shuttle/internal/logging"
	"shuttle/internal/media/ffmpeg"
	"shuttle/internal/media/ffprobe"
	"shuttle/internal/services"
	"shuttle/internal/workarea"
)

// Options configures a Segmenter.
type Options struct {
	FFmpegBinary        string
	FFprobeBinary       string
	MaxSizeMB           float64
	MaxDeviationSeconds float64
	SilenceNoiseDB      float64
	SilenceMinDuration  float64
}

// Result reports the outcome of one split operation.
type Result struct {
	Chunks      []string  `json:"chunks"`
	TotalChunks int       `json:"total_chunks"`
	SplitPoints []float64 `json:"split_points"`
	Message     string    `json:"message,omitempty"`
}

// Segmenter splits audio files that exceed a size budget. Extraction is
// all-or-nothing: segments are positionally dependent, so one failed
// extraction aborts the whole operation.
type Segmenter struct {
	opts   Options
	logger *slog.Logger

	probeDuration  func(ctx context.Context, binary, path string) (float64, error)
	detectSilences func(ctx context.Context, binary, path string, noiseDB, minDuration float64) ([]ffmpeg.Silence, error)
	extractSegment func(ctx context.Context, binary, source string, start, duration float64, dest string) error
}

// NewSegmenter builds a Segmenter bound to the system ffmpeg/ffprobe tools.
func NewSegmenter(opts Options, logger *slog.Logger) *Segmenter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Segmenter{
		opts:           opts,
		logger:         logging.NewComponentLogger(logger, "segmenter"),
		probeDuration:  ffprobe.Duration,
		detectSilences: ffmpeg.DetectSilences,
		extractSegment: ffmpeg.ExtractAudioSegment,
	}
}

// Split divides the audio file into segments no larger than the configured
// budget, cutting at silence midpoints where one lies within the deviation
// budget. Segments land in outputDir, or next to the source when outputDir
// is empty. A file already within budget is returned untouched as the sole
// segment.
func (s *Segmenter) Split(ctx context.Context, audioPath, outputDir string) (*Result, error) {
	if s.opts.MaxSizeMB <= 0 {
		return nil, services.Wrap(services.ErrInput, "segment", "split", fmt.Sprintf("size budget must be positive, got %v MB", s.opts.MaxSizeMB), nil)
	}
	if s.opts.MaxDeviationSeconds < 0 {
		return nil, services.Wrap(services.ErrInput, "segment", "split", fmt.Sprintf("max deviation must be non-negative, got %v", s.opts.MaxDeviationSeconds), nil)
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "segment", "split", fmt.Sprintf("audio file %s", audioPath), err)
	}

	maxSizeBytes := s.opts.MaxSizeMB * 1024 * 1024
	fileSize := float64(info.Size())
	if fileSize <= maxSizeBytes {
		s.logger.Info("audio within size budget, no split needed",
			logging.String("path", audioPath),
			logging.Int64("size_bytes", info.Size()))
		return &Result{
			Chunks:      []string{audioPath},
			TotalChunks: 1,
			SplitPoints: []float64{},
			Message:     "File size within limit, no splitting needed",
		}, nil
	}

	duration, err := s.probeDuration(ctx, s.opts.FFprobeBinary, audioPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "segment", "probe", "audio duration", err)
	}

	segmentCount := int(math.Ceil(fileSize / maxSizeBytes))
	roughPoints := make([]float64, 0, segmentCount-1)
	for i := 1; i < segmentCount; i++ {
		roughPoints = append(roughPoints, float64(i)/float64(segmentCount)*duration)
	}

	silences, err := s.detectSilences(ctx, s.opts.FFmpegBinary, audioPath, s.opts.SilenceNoiseDB, s.opts.SilenceMinDuration)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "segment", "silencedetect", "scan for silence", err)
	}
	midpoints := make([]float64, 0, len(silences))
	for _, silence := range silences {
		midpoints = append(midpoints, silence.Midpoint())
	}
	sort.Float64s(midpoints)

	if len(midpoints) == 0 {
		logging.WarnWithContext(ctx, s.logger, "no silence detected in audio, using rough split points",
			logging.String("path", audioPath),
			logging.String(logging.FieldErrorHint, "cuts may land mid-word"),
			logging.String(logging.FieldImpact, "segment boundaries are evenly spaced instead of silence aligned"))
	}

	splitPoints := snapPoints(roughPoints, midpoints, s.opts.MaxDeviationSeconds, duration)

	s.logger.Info("audio split planned",
		logging.String("path", audioPath),
		logging.Int64("size_bytes", info.Size()),
		logging.Float64("duration_seconds", duration),
		logging.Int("silence_candidates", len(midpoints)),
		logging.Int("segments", len(splitPoints)+1))

	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := workarea.Ensure(outputDir); err != nil {
		return nil, services.Wrap(services.ErrInput, "segment", "split", "prepare output directory", err)
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	boundaries := append([]float64{0}, splitPoints...)
	boundaries = append(boundaries, duration)

	chunks := make([]string, 0, len(boundaries)-1)
	for i := 0; i < len(boundaries)-1; i++ {
		start := boundaries[i]
		segDuration := boundaries[i+1] - boundaries[i]
		dest := filepath.Join(outputDir, workarea.SegmentFileName(base, i))

		if err := s.extractSegment(ctx, s.opts.FFmpegBinary, audioPath, start, segDuration, dest); err != nil {
			return nil, services.Wrap(services.ErrExternalTool, "segment", "extract", fmt.Sprintf("segment %d", i), err)
		}
		chunks = append(chunks, dest)

		s.logger.Debug("segment extracted",
			logging.Int(logging.FieldChunkID, i),
			logging.String("path", dest),
			logging.Float64("start_seconds", start),
			logging.Float64("duration_seconds", segDuration))
	}

	s.logger.Info("audio split complete",
		logging.String("path", audioPath),
		logging.Int("segments", len(chunks)))

	return &Result{
		Chunks:      chunks,
		TotalChunks: len(chunks),
		SplitPoints: splitPoints,
	}, nil
}

// snapPoints resolves each rough point against the silence midpoints, then
// sorts and deduplicates. Adjacent rough points can resolve to the same
// midpoint, so the result may be shorter than the input. Points that would
// produce an empty leading or trailing segment are dropped.
func snapPoints(roughPoints, midpoints []float64, maxDeviation, duration float64) []float64 {
	snapped := make([]float64, 0, len(roughPoints))
	for _, rough := range roughPoints {
		snapped = append(snapped, Locate(rough, midpoints, maxDeviation))
	}
	sort.Float64s(snapped)

	result := make([]float64, 0, len(snapped))
	for _, point := range snapped {
		if point <= 0 || point >= duration {
			continue
		}
		if len(result) > 0 && result[len(result)-1] == point {
			continue
		}
		result = append(result, point)
	}
	return result
}
