package domain

import (
	"path/filepath"
	"strings"
)

const (
	// LibraryPrefix is prepended to artifact names that do not already start with it.
	LibraryPrefix = "rive_"
	// DebugMarker is inserted before the extension of debug artifacts.
	DebugMarker = "_d"

	// prefixStem is what an already prefixed name starts with.
	prefixStem = "rive"
	// androidMarker in a destination path disables the prefix rule.
	androidMarker = "Android"
)

// CopyRule describes one synchronization pass from a build output directory
// into the plugin tree.
type CopyRule struct {
	// Src is the directory files are selected from.
	Src string
	// Dst is the directory files are copied into.
	Dst string
	// Ext is the file extension selected, including the leading dot.
	Ext string
	// Release disables the debug marker.
	Release bool
	// Rename enables the library prefix rule.
	Rename bool
	// Files, when set, restricts the selection to these base names (without extension).
	Files []string
	// Recursive selects every file below Src keeping relative paths.
	Recursive bool
	// Platform is the target platform the files were built for.
	Platform Platform
}

// TargetName returns the destination file name for a selected source file name.
func (r CopyRule) TargetName(name string) string {
	if r.shouldPrefix(name) {
		name = LibraryPrefix + name
	}
	if !r.Release {
		name = DebugName(name, r.Ext)
	}
	return name
}

func (r CopyRule) shouldPrefix(name string) bool {
	if !r.Rename || r.Platform.IsApple() {
		return false
	}
	if strings.Contains(filepath.ToSlash(r.Dst), androidMarker) {
		return false
	}
	return !strings.HasPrefix(name, prefixStem)
}

// Matches reports whether a base file name is selected by the rule.
func (r CopyRule) Matches(name string) bool {
	if !strings.HasSuffix(name, r.Ext) {
		return false
	}
	if len(r.Files) == 0 {
		return true
	}
	stem := strings.TrimSuffix(name, r.Ext)
	for _, f := range r.Files {
		if f == stem {
			return true
		}
	}
	return false
}

// DebugName inserts the debug marker before ext. When the name does not end in
// ext the marker goes before the final extension.
func DebugName(name, ext string) string {
	if ext == "" || !strings.HasSuffix(name, ext) {
		ext = filepath.Ext(name)
	}
	return strings.TrimSuffix(name, ext) + DebugMarker + ext
}

// CopiedFile is a single file written by a synchronization pass.
type CopiedFile struct {
	Source      string
	Destination string
}

// MirrorRule copies a whole directory tree.
type MirrorRule struct {
	Src string
	Dst string
	// Replace deletes the destination before copying.
	Replace bool
	// Exclude holds glob patterns matched against base names that are not copied.
	Exclude []string
}

// ResetRule deletes a directory and optionally recreates it empty.
type ResetRule struct {
	Path     string
	Recreate bool
}

// SimRenameRule marks the static libraries of a simulator build. Every existing
// *.sim.a under Dir is deleted, then every *.a is renamed to *.sim.a.
type SimRenameRule struct {
	Dir string
}

// ShaderRule converts minified generated shaders to Unreal shader includes.
type ShaderRule struct {
	Src string
	Dst string
}

const (
	// StaticLibExt is the extension of static libraries on Android and Apple platforms.
	StaticLibExt = ".a"
	// SimLibExt is the extension of iOS simulator static libraries.
	SimLibExt = ".sim.a"
	// ImportLibExt is the extension of Windows libraries.
	ImportLibExt = ".lib"
	// ShaderExt is the extension of Unreal shader includes.
	ShaderExt = ".ush"
	// MinifiedMarker selects generated shader sources.
	MinifiedMarker = "minified"
)
