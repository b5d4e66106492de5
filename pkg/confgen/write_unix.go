//go:build !windows

package confgen

import (
	"fmt"
	"log/slog"

	"github.com/google/renameio/v2"
)

// writeFileAtomic 经临时文件 + fsync + rename 写入，读者只会看到完整的新旧文件之一。
func writeFileAtomic(path string, content []byte) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			slog.Debug("Cleanup pending file", "path", path, "error", err)
		}
	}()

	if _, err := pending.Write(content); err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace file: %w", err)
	}

	return nil
}
