package repo

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrNotRepository 匹配所有 Kind 为 NotRepository 的 OpenError。
var ErrNotRepository = errors.New("not a git repository")

// OpenErrorKind 区分打开仓库失败的原因。
type OpenErrorKind int

const (
	// NotRepository 表示目录不是仓库，遍历应继续进入子目录。
	NotRepository OpenErrorKind = iota + 1
	// OpenFailed 表示其他失败，只影响当前目录。
	OpenFailed
)

func (k OpenErrorKind) String() string {
	switch k {
	case NotRepository:
		return "not a repository"
	case OpenFailed:
		return "open failed"
	default:
		return fmt.Sprintf("OpenErrorKind(%d)", int(k))
	}
}

// OpenError 是 Open 返回的错误。
type OpenError struct {
	Path  string
	Kind  OpenErrorKind
	Cause error
}

// Error 返回包含路径和失败类型的描述。
func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %s: %v", e.Path, e.Kind, e.Cause)
}

// Unwrap 返回底层错误。
func (e *OpenError) Unwrap() error {
	return e.Cause
}

// Is 让 errors.Is(err, ErrNotRepository) 按 Kind 匹配。
func (e *OpenError) Is(target error) bool {
	return target == ErrNotRepository && e.Kind == NotRepository
}

// NewOpenError 创建 OpenError。
func NewOpenError(path string, kind OpenErrorKind, cause error) *OpenError {
	return &OpenError{Path: path, Kind: kind, Cause: cause}
}

// IsNotRepository 判断 err 是否表示"不是仓库"。
func IsNotRepository(err error) bool {
	var openErr *OpenError
	return errors.As(err, &openErr) && openErr.Kind == NotRepository
}

// Stage 标记发现过程中出错的阶段。
type Stage string

const (
	StageWalk Stage = "walk"
	StageOpen Stage = "open"
)

// DiscoveryError 是遍历时产出的单条错误，不会中断对其他目录的遍历。
type DiscoveryError struct {
	Root  string // 所属目录树
	Path  string
	Stage Stage
	Cause error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("%s %s (tree %s): %v", e.Stage, e.Path, e.Root, e.Cause)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Cause
}

// NewDiscoveryError 创建 DiscoveryError，root 是所属目录树的根目录。
func NewDiscoveryError(root, path string, stage Stage, cause error) *DiscoveryError {
	return &DiscoveryError{Root: root, Path: path, Stage: stage, Cause: cause}
}
