package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

const (
	repoCountWarnThreshold = 50
	gitSizeWarnThreshold   = int64(1 << 30) // 1GB
)

// CheckRoot 检查目录树根目录存在、是目录且可读。
func CheckRoot(root string) error {
	st, err := os.Stat(root)
	if err != nil {
		return errors.Wrap(err, "cannot stat root")
	}
	if !st.IsDir() {
		return errors.Newf("not a directory: %s", root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return errors.Wrap(err, "cannot read root")
	}
	return nil
}

// GitDir 返回仓库对象数据库所在目录（工作区的 .git 或裸仓库本身）。
func GitDir(r *git.Repository) (string, bool) {
	st, ok := r.Storer.(*filesystem.Storage)
	if !ok {
		return "", false
	}
	return st.Filesystem().Root(), true
}

// CheckPerformance 检查性能预警项：仓库数量和 .git 体积。
func CheckPerformance(found []Discovered) []string {
	warnings := make([]string, 0)

	if len(found) > repoCountWarnThreshold {
		warnings = append(warnings, fmt.Sprintf("large number of repos (%d) may slow down scans", len(found)))
	}

	for _, d := range found {
		if d.Repo == nil {
			continue
		}
		gitDir, ok := GitDir(d.Repo)
		if !ok {
			continue
		}
		size, err := dirSize(gitDir)
		if err != nil {
			continue
		}
		if size > gitSizeWarnThreshold {
			warnings = append(warnings, fmt.Sprintf("%s is large (%.1f GB), may be slow", d.Name, float64(size)/float64(1<<30)))
		}
	}

	return warnings
}

func dirSize(dir string) (int64, error) {
	var size int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return size, nil
}
