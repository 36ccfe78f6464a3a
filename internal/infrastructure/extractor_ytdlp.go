package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/yt-extract-go/internal/domain"
	"github.com/yourusername/yt-extract-go/pkg/logger"
)

// printInfoAfterMove makes yt-dlp print the final info dict as one JSON line
// once files (media and subtitles) are in their final location.
const printInfoAfterMove = "after_move:%()j"

// ExtractorError carries the backend's own error text
type ExtractorError struct {
	Detail string
	Err    error
}

func (e *ExtractorError) Error() string {
	return e.Detail
}

func (e *ExtractorError) Unwrap() error {
	return e.Err
}

// YTDLPExtractor implements domain.Extractor by running the yt-dlp binary
type YTDLPExtractor struct {
	config      *domain.ExtractorConfig
	download    *domain.DownloadConfig
	eventLogger *logger.MultiLogger // optional
}

// NewYTDLPExtractor creates a new yt-dlp backed extractor
func NewYTDLPExtractor(config *domain.ExtractorConfig, download *domain.DownloadConfig, eventLogger *logger.MultiLogger) *YTDLPExtractor {
	return &YTDLPExtractor{
		config:      config,
		download:    download,
		eventLogger: eventLogger,
	}
}

// Available checks that the yt-dlp binary can be found
func (e *YTDLPExtractor) Available() error {
	if _, err := exec.LookPath(e.config.Binary); err != nil {
		return fmt.Errorf("yt-dlp binary not found: %w", err)
	}
	return nil
}

// ExtractInfo resolves metadata without downloading media
func (e *YTDLPExtractor) ExtractInfo(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	output, err := e.run(ctx, "info", e.buildInfoArgs(url))
	if err != nil {
		return nil, err
	}
	return parseInfoJSON(output)
}

// Download fetches the best stream at or below opts.MaxHeight
func (e *YTDLPExtractor) Download(ctx context.Context, url string, opts domain.DownloadOptions) (*domain.VideoMetadata, error) {
	if e.download.OutputDir != "" {
		if err := os.MkdirAll(e.download.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	output, err := e.run(ctx, "download", e.buildDownloadArgs(url, opts))
	if err != nil {
		return nil, err
	}
	return parseInfoJSON(output)
}

func (e *YTDLPExtractor) buildInfoArgs(url string) []string {
	args := []string{"--dump-single-json", "--no-playlist", "--no-warnings"}
	args = e.appendCookies(args)
	return append(args, url)
}

func (e *YTDLPExtractor) buildDownloadArgs(url string, opts domain.DownloadOptions) []string {
	args := []string{
		"-f", fmt.Sprintf("best[height<=%d]", opts.MaxHeight),
		"-o", e.download.OutputTemplate,
		"--no-playlist",
		"--no-simulate",
		"--print", printInfoAfterMove,
	}
	if e.download.OutputDir != "" {
		args = append(args, "-P", e.download.OutputDir)
	}

	if opts.Subtitles {
		args = append(args,
			"--write-subs",
			"--write-auto-subs",
			"--sub-langs", e.config.SubtitleLang,
		)
		if e.config.SubtitleFormat != "" {
			args = append(args, "--sub-format", e.config.SubtitleFormat)
		}
	}

	args = e.appendCookies(args)
	return append(args, url)
}

func (e *YTDLPExtractor) appendCookies(args []string) []string {
	if e.config.CookieFile != "" && fileExists(e.config.CookieFile) {
		args = append(args, "--cookies", e.config.CookieFile)
	}
	return args
}

// run executes yt-dlp, returning stdout. stderr goes to the daily process log.
func (e *YTDLPExtractor) run(ctx context.Context, op string, args []string) ([]byte, error) {
	if e.download.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.download.Timeout)
		defer cancel()
	}

	processLog, closeLog := e.openLogFile()
	defer closeLog()

	cmdLine := ShellEscapeCommand(e.config.Binary, args...)
	writeLogHeader(processLog, op, cmdLine)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.config.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(processLog, &stderr)

	if err := cmd.Run(); err != nil {
		detail := errorDetail(stderr.String(), ctx.Err(), err)
		writeLogFooter(processLog, false, detail)
		if e.eventLogger != nil {
			e.eventLogger.LogAppError("yt-dlp failed",
				zap.String("op", op),
				zap.String("command", cmdLine),
				zap.String("detail", detail),
				zap.Error(err))
		}
		return nil, &ExtractorError{Detail: detail, Err: err}
	}

	writeLogFooter(processLog, true, op)
	return stdout.Bytes(), nil
}

// openLogFile opens today's yt-dlp process log, or a discarding writer
// when no logs directory is configured.
func (e *YTDLPExtractor) openLogFile() (io.Writer, func()) {
	noop := func() {}
	if e.download.LogsDir == "" {
		return io.Discard, noop
	}
	if err := os.MkdirAll(e.download.LogsDir, 0755); err != nil {
		return io.Discard, noop
	}

	path := filepath.Join(e.download.LogsDir, "ytdlp-"+time.Now().Format("20060102")+".log")
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return io.Discard, noop
	}
	return file, func() { file.Close() }
}

func writeLogHeader(w io.Writer, op, cmdLine string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(w, "\n=== [%s] %s ===\n", timestamp, op)
	fmt.Fprintf(w, "$ %s\n", cmdLine)
}

func writeLogFooter(w io.Writer, success bool, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", timestamp, status, message)
	fmt.Fprint(w, "=== END ===\n\n")
}

// errorDetail picks the message a client sees for a failed run: the last
// "ERROR:" line yt-dlp printed, else the context or process error.
func errorDetail(stderr string, ctxErr, runErr error) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "ERROR:") {
			return line
		}
	}
	if ctxErr != nil {
		return fmt.Sprintf("yt-dlp aborted: %v", ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) && len(lines) > 0 && lines[len(lines)-1] != "" {
		return strings.TrimSpace(lines[len(lines)-1])
	}
	return fmt.Sprintf("yt-dlp failed: %v", runErr)
}

// parseInfoJSON decodes the last JSON line yt-dlp printed.
// A run that printed nothing yields nil metadata.
func parseInfoJSON(output []byte) (*domain.VideoMetadata, error) {
	lines := bytes.Split(bytes.TrimSpace(output), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var meta domain.VideoMetadata
		if err := json.Unmarshal(line, &meta); err != nil {
			return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
		}
		return &meta, nil
	}
	return nil, nil
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
