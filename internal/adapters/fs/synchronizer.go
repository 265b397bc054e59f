package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/otiai10/copy"
	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const dirPerm = 0o755

var _ ports.Synchronizer = (*Synchronizer)(nil)

// Synchronizer implements ports.Synchronizer on the local file system.
type Synchronizer struct {
	logger   ports.Logger
	walker   *Walker
	resolver *Resolver
}

// NewSynchronizer creates a new Synchronizer.
func NewSynchronizer(logger ports.Logger, walker *Walker, resolver *Resolver) *Synchronizer {
	return &Synchronizer{
		logger:   logger,
		walker:   walker,
		resolver: resolver,
	}
}

// Sync copies the files selected by rule into rule.Dst, applying the prefix and
// debug marker rules to destination names. Copies keep mode and mtime.
//
// A failed copy aborts the pass. Files copied before it stay on disk.
func (s *Synchronizer) Sync(rule domain.CopyRule) ([]domain.CopiedFile, error) {
	src, err := s.requireDir(rule.Src)
	if err != nil {
		return nil, err
	}

	dst, err := filepath.Abs(rule.Dst)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve destination"), "dst", rule.Dst)
	}

	selected, err := s.selectFiles(src, rule)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dst, dirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create destination"), "dst", dst)
	}

	copied := make([]domain.CopiedFile, 0, len(selected))
	for _, rel := range selected {
		dir, name := filepath.Split(rel)
		from := filepath.Join(src, rel)
		to := filepath.Join(dst, dir, rule.TargetName(name))

		if err := copyFile(from, to); err != nil {
			return copied, err
		}
		copied = append(copied, domain.CopiedFile{Source: from, Destination: to})
	}

	return copied, nil
}

// selectFiles returns source paths relative to src.
func (s *Synchronizer) selectFiles(src string, rule domain.CopyRule) ([]string, error) {
	if len(rule.Files) > 0 {
		// Explicit names are copied whether or not they were built; a missing
		// one fails the pass.
		names := make([]string, len(rule.Files))
		for i, f := range rule.Files {
			names[i] = f + rule.Ext
		}
		return names, nil
	}

	if rule.Recursive {
		var names []string
		for path := range s.walker.WalkFiles(src, nil) {
			if !rule.Matches(filepath.Base(path)) {
				continue
			}
			rel, err := filepath.Rel(src, path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
			}
			names = append(names, rel)
		}
		return names, nil
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list source"), "src", src)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !rule.Matches(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Mirror copies the tree at rule.Src into rule.Dst, merging with existing
// content unless rule.Replace is set.
func (s *Synchronizer) Mirror(rule domain.MirrorRule) error {
	src, err := s.requireDir(rule.Src)
	if err != nil {
		return err
	}

	if rule.Replace {
		if err := os.RemoveAll(rule.Dst); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to clear destination"), "dst", rule.Dst)
		}
	}

	opts := copy.Options{
		PreserveTimes: true,
		Skip: func(info os.FileInfo, path, _ string) (bool, error) {
			return path != src && ignored(info.Name(), rule.Exclude), nil
		},
	}
	if err := copy.Copy(src, rule.Dst, opts); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to mirror tree"), "src", src), "dst", rule.Dst)
	}
	return nil
}

// Reset deletes rule.Path and recreates it empty when rule.Recreate is set.
// A missing path is not an error.
func (s *Synchronizer) Reset(rule domain.ResetRule) error {
	if err := os.RemoveAll(rule.Path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to delete directory"), "path", rule.Path)
	}
	if !rule.Recreate {
		return nil
	}
	if err := os.MkdirAll(rule.Path, dirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", rule.Path)
	}
	return nil
}

// SimRename deletes every simulator library below rule.Dir, then renames every
// remaining static library to the simulator extension.
func (s *Synchronizer) SimRename(rule domain.SimRenameRule) error {
	dir, err := s.requireDir(rule.Dir)
	if err != nil {
		return err
	}

	var stale, libs []string
	for path := range s.walker.WalkFiles(dir, nil) {
		switch {
		case strings.HasSuffix(path, domain.SimLibExt):
			stale = append(stale, path)
		case strings.HasSuffix(path, domain.StaticLibExt):
			libs = append(libs, path)
		}
	}

	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to delete simulator library"), "path", path)
		}
	}

	for _, path := range libs {
		target := strings.TrimSuffix(path, domain.StaticLibExt) + domain.SimLibExt
		if err := os.Rename(path, target); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to rename simulator library"), "path", path)
		}
	}
	return nil
}

// ConvertShaders copies every file in rule.Src whose name contains the
// minified marker to <stem>.ush in rule.Dst.
func (s *Synchronizer) ConvertShaders(rule domain.ShaderRule) ([]domain.CopiedFile, error) {
	src, err := s.requireDir(rule.Src)
	if err != nil {
		return nil, err
	}

	matches, err := s.resolver.ResolveFiles(src, "*"+domain.MinifiedMarker+"*")
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(rule.Dst, dirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create destination"), "dst", rule.Dst)
	}

	copied := make([]domain.CopiedFile, 0, len(matches))
	for _, from := range matches {
		name := filepath.Base(from)
		to := filepath.Join(rule.Dst, strings.TrimSuffix(name, filepath.Ext(name))+domain.ShaderExt)
		if err := copyFile(from, to); err != nil {
			return copied, err
		}
		copied = append(copied, domain.CopiedFile{Source: from, Destination: to})
	}
	return copied, nil
}

// requireDir resolves path and reports domain.ErrSourceMissing through the
// logger when it is not an existing directory.
func (s *Synchronizer) requireDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve source"), "src", path)
	}

	info, err := os.Stat(abs)
	if err == nil && info.IsDir() {
		return abs, nil
	}

	missing := zerr.With(zerr.Wrap(domain.ErrSourceMissing, "the source directory does not exist"), "src", abs)
	s.logger.Error(missing)
	return "", missing
}

func copyFile(from, to string) error {
	if err := copy.Copy(from, to, copy.Options{PreserveTimes: true}); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to copy file"), "src", from), "dst", to)
	}
	return nil
}
