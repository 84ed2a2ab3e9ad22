package counting

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	errorPathFormat          = "%s: %w"
	errorMissingPathFormat   = "%w: %w"
	errorReadDirectoryFormat = "reading directory %s: %w"
	errorResolveLinkFormat   = "resolving %s: %w"
)

var (
	// ErrNotFound reports a path that is neither a regular file nor a directory.
	ErrNotFound = errors.New("not a regular file or directory")
	// ErrSymlinkCycle reports a symbolic link that leads back into a directory being walked.
	ErrSymlinkCycle = errors.New("symbolic link cycle")
)

// Config is the immutable configuration of a counting run.
type Config struct {
	Recursive      bool
	FollowSymlinks bool
	Exclusions     ExclusionSet
	Rule           CountRule
}

// Reporter receives diagnostics while a tree is walked.
type Reporter interface {
	// Excluded is called for every path skipped by the exclusion filter.
	Excluded(path string)
	// Failed is called for every directory entry whose count failed. The entry
	// contributes zero lines and the walk continues with its siblings.
	Failed(path string, err error)
}

// ReporterFuncs adapts plain functions to Reporter. Nil functions are ignored.
type ReporterFuncs struct {
	OnExcluded func(path string)
	OnFailed   func(path string, err error)
}

// Excluded implements Reporter.
func (funcs ReporterFuncs) Excluded(path string) {
	if funcs.OnExcluded != nil {
		funcs.OnExcluded(path)
	}
}

// Failed implements Reporter.
func (funcs ReporterFuncs) Failed(path string, err error) {
	if funcs.OnFailed != nil {
		funcs.OnFailed(path, err)
	}
}

var _ Reporter = ReporterFuncs{}

// Walker counts lines below a root path.
type Walker struct {
	config   Config
	reporter Reporter
}

// NewWalker returns a Walker for config. A nil reporter discards diagnostics.
func NewWalker(config Config, reporter Reporter) *Walker {
	if reporter == nil {
		reporter = ReporterFuncs{}
	}
	return &Walker{config: config, reporter: reporter}
}

// Config returns the configuration the walker was built with.
func (walker *Walker) Config() Config {
	return walker.config
}

// walkState tracks the resolved directories on the current descent path.
type walkState struct {
	activeDirectories map[string]struct{}
}

// CountTree returns the number of qualifying lines under root. A regular file is
// counted directly. A directory is the sum of its eligible entries; entries that
// fail are reported through the Reporter and contribute zero. An error is returned
// only when root itself cannot be counted.
func (walker *Walker) CountTree(ctx context.Context, root string) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	state := &walkState{activeDirectories: map[string]struct{}{}}
	return walker.countPath(ctx, root, state, true)
}

func (walker *Walker) countPath(ctx context.Context, path string, state *walkState, isRoot bool) (int, error) {
	if walker.config.Exclusions.IsExcluded(path) {
		walker.reporter.Excluded(path)
		return 0, nil
	}

	isSymlink := false
	if !isRoot {
		linkInfo, linkStatError := os.Lstat(path)
		if linkStatError != nil {
			return 0, classifyStatError(linkStatError)
		}
		isSymlink = linkInfo.Mode()&fs.ModeSymlink != 0
	}

	info, statError := os.Stat(path)
	if statError != nil {
		return 0, classifyStatError(statError)
	}

	switch {
	case info.Mode().IsRegular():
		return CountLines(path, walker.config.Rule)
	case info.IsDir():
		if !isRoot {
			if !walker.config.Recursive {
				return 0, nil
			}
			if isSymlink && !walker.config.FollowSymlinks {
				return 0, nil
			}
		}
		return walker.countDirectory(ctx, path, state)
	default:
		return 0, fmt.Errorf(errorPathFormat, path, ErrNotFound)
	}
}

func (walker *Walker) countDirectory(ctx context.Context, path string, state *walkState) (int, error) {
	resolvedPath, resolveError := filepath.EvalSymlinks(path)
	if resolveError != nil {
		return 0, fmt.Errorf(errorResolveLinkFormat, path, resolveError)
	}
	if _, active := state.activeDirectories[resolvedPath]; active {
		return 0, fmt.Errorf(errorPathFormat, path, ErrSymlinkCycle)
	}
	state.activeDirectories[resolvedPath] = struct{}{}
	defer delete(state.activeDirectories, resolvedPath)

	directoryEntries, readDirectoryError := os.ReadDir(path)
	if readDirectoryError != nil {
		return 0, fmt.Errorf(errorReadDirectoryFormat, path, readDirectoryError)
	}

	total := 0
	for _, directoryEntry := range directoryEntries {
		if contextError := ctx.Err(); contextError != nil {
			return 0, contextError
		}
		childPath := filepath.Join(path, directoryEntry.Name())
		childCount, childError := walker.countPath(ctx, childPath, state, false)
		if childError != nil {
			if isContextError(childError) {
				return 0, childError
			}
			walker.reporter.Failed(childPath, childError)
			continue
		}
		total += childCount
	}
	return total, nil
}

func classifyStatError(statError error) error {
	if errors.Is(statError, fs.ErrNotExist) {
		return fmt.Errorf(errorMissingPathFormat, ErrNotFound, statError)
	}
	return statError
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
