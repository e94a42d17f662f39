package md1img

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// backupFile copies path aside with a timestamped name before it is
// overwritten. It returns the backup path, or "" when path does not
// exist. Backups land next to the original unless backupDir is set.
func backupFile(path, backupDir string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	name := fmt.Sprintf("%s_backup_%s%s", stem, time.Now().Format("20060102_150405"), ext)
	dir := filepath.Dir(path)
	if backupDir != "" {
		if err := os.MkdirAll(backupDir, 0o755); err != nil {
			return "", err
		}
		dir = backupDir
	}
	dst := filepath.Join(dir, name)
	if err := copyFile(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
