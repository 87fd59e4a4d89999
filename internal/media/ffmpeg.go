package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"audio-weaver/internal/domain"
	apperrors "audio-weaver/pkg/errors"
)

// FFmpeg implements domain.MediaProcessor by shelling out to ffmpeg.
// Failures surface the tool's stderr as the error diagnostic.
type FFmpeg struct {
	cmd    string
	logger domain.Logger
}

// NewFFmpeg creates an ffmpeg-backed media processor
func NewFFmpeg(logger domain.Logger) *FFmpeg {
	return &FFmpeg{
		cmd:    "ffmpeg",
		logger: logger,
	}
}

// Concat joins the input files in order into output via a generated
// concat manifest, copying streams without re-encoding.
func (f *FFmpeg) Concat(ctx context.Context, inputs []string, output string) error {
	manifest := filepath.Join(filepath.Dir(output), "concat_list.txt")
	if err := writeConcatManifest(manifest, inputs); err != nil {
		return apperrors.NewInternalError("failed to write concat manifest", err)
	}
	return f.run(ctx, concatArgs(manifest, output))
}

// Transcode converts input to the container implied by output's extension
func (f *FFmpeg) Transcode(ctx context.Context, input, output string) error {
	return f.run(ctx, transcodeArgs(input, output))
}

func (f *FFmpeg) run(ctx context.Context, args []string) error {
	cmdPath, err := exec.LookPath(f.cmd)
	if err != nil {
		return apperrors.NewToolError("ffmpeg is not available", "", err)
	}

	f.logger.Debug("running media tool", "cmd", f.cmd, "args", strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, cmdPath, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diagnostic := strings.TrimSpace(stderr.String())
		f.logger.Error("media tool failed", err, "diagnostic", diagnostic)
		return apperrors.NewToolError("ffmpeg exited with an error", diagnostic, err)
	}
	return nil
}

// writeConcatManifest writes the ordered play-list file consumed by
// ffmpeg's concat demuxer
func writeConcatManifest(path string, inputs []string) error {
	var sb strings.Builder
	for _, input := range inputs {
		// Single quotes in paths are escaped the concat-demuxer way.
		escaped := strings.ReplaceAll(input, "'", `'\''`)
		fmt.Fprintf(&sb, "file '%s'\n", escaped)
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

func concatArgs(manifest, output string) []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		output,
	}
}

func transcodeArgs(input, output string) []string {
	return []string{
		"-y",
		"-i", input,
		output,
	}
}
