package hub

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog"

	"translatord/internal/common/fsutil"
)

// ExecConverter shells out to an exporter command (typically an
// optimum-style ONNX exporter). The command is invoked as:
//
//	bin args... <model-id> <dest-dir>
//
// and is expected to write the full bundle into dest-dir.
type ExecConverter struct {
	Bin  string
	Args []string
	Log  zerolog.Logger
}

// NewExecConverter builds a converter around the given command.
func NewExecConverter(bin string, log zerolog.Logger, args ...string) *ExecConverter {
	return &ExecConverter{Bin: bin, Args: args, Log: log}
}

func (c *ExecConverter) ConvertAndDownload(ctx context.Context, modelID, destDir string) error {
	if c.Bin == "" {
		return fmt.Errorf("converter command not configured")
	}
	if err := fsutil.EnsureDir(destDir); err != nil {
		return fmt.Errorf("create bundle dir: %w", err)
	}
	argv := append(append([]string{}, c.Args...), modelID, destDir)
	cmd := exec.CommandContext(ctx, c.Bin, argv...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	c.Log.Info().Str("model", modelID).Str("dest", destDir).Msg("converting hub model to onnx bundle")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("convert %s: %w: %s", modelID, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}
