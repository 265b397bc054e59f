package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rivebuild/internal/adapters/fs"
	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/rivebuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newSynchronizer(t *testing.T) (*fs.Synchronizer, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return fs.NewSynchronizer(mockLogger, fs.NewWalker(), fs.NewResolver()), mockLogger
}

func TestSynchronizer_Sync_DebugWindows(t *testing.T) {
	sync, _ := newSynchronizer(t)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "Libraries", "Win64")
	writeFile(t, filepath.Join(src, "rive.lib"), "rive")
	writeFile(t, filepath.Join(src, "rive_decoders.lib"), "decoders")
	writeFile(t, filepath.Join(src, "libpng.lib"), "png")
	writeFile(t, filepath.Join(src, "rive.pdb"), "symbols")

	copied, err := sync.Sync(domain.CopyRule{
		Src: src, Dst: dst, Ext: ".lib", Rename: true, Platform: domain.PlatformWindows,
	})
	require.NoError(t, err)
	assert.Len(t, copied, 3)
	assert.ElementsMatch(t, []string{"rive_d.lib", "rive_decoders_d.lib", "rive_libpng_d.lib"}, listTree(t, dst))

	data, err := os.ReadFile(filepath.Join(src, "rive.lib"))
	require.NoError(t, err)
	assert.Equal(t, "rive", string(data), "source names are untouched")
}

func TestSynchronizer_Sync_DebugStaticLibs(t *testing.T) {
	sync, _ := newSynchronizer(t)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "Libraries", "Linuxish")
	writeFile(t, filepath.Join(src, "rive.a"), "rive")
	writeFile(t, filepath.Join(src, "rive_decoders.a"), "decoders")

	_, err := sync.Sync(domain.CopyRule{
		Src: src, Dst: dst, Ext: ".a", Rename: true, Platform: domain.PlatformWindows,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"rive_d.a", "rive_decoders_d.a"}, listTree(t, dst))
}

func TestSynchronizer_Sync_AndroidReleaseKeepsNames(t *testing.T) {
	sync, _ := newSynchronizer(t)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "Libraries", "Android")
	writeFile(t, filepath.Join(src, "libjpeg.a"), "jpeg")
	writeFile(t, filepath.Join(src, "rive.a"), "rive")

	_, err := sync.Sync(domain.CopyRule{
		Src: src, Dst: dst, Ext: ".a", Release: true, Rename: true, Platform: domain.PlatformAndroid,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"libjpeg.a", "rive.a"}, listTree(t, dst))
}

func TestSynchronizer_Sync_AppleNeverPrefixes(t *testing.T) {
	sync, _ := newSynchronizer(t)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "Libraries", "IOS")
	writeFile(t, filepath.Join(src, "libwebp.sim.a"), "webp")

	_, err := sync.Sync(domain.CopyRule{
		Src: src, Dst: dst, Ext: ".sim.a", Rename: true, Platform: domain.PlatformIOS,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"libwebp_d.sim.a"}, listTree(t, dst))
}

func TestSynchronizer_Sync_ExplicitFiles(t *testing.T) {
	sync, _ := newSynchronizer(t)
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "libgms.a"), "gms")
	writeFile(t, filepath.Join(src, "libgoldens.a"), "goldens")
	writeFile(t, filepath.Join(src, "rive.a"), "rive")

	copied, err := sync.Sync(domain.CopyRule{
		Src: src, Dst: dst, Ext: ".a", Release: true, Files: []string{"libgms", "libgoldens"}, Platform: domain.PlatformMac,
	})
	require.NoError(t, err)
	assert.Len(t, copied, 2)
	assert.ElementsMatch(t, []string{"libgms.a", "libgoldens.a"}, listTree(t, dst))
}

func TestSynchronizer_Sync_ExplicitFileMissingAborts(t *testing.T) {
	sync, _ := newSynchronizer(t)
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "gms.lib"), "gms")

	copied, err := sync.Sync(domain.CopyRule{
		Src: src, Dst: dst, Ext: ".lib", Release: true, Files: []string{"gms", "goldens", "tools_common"}, Platform: domain.PlatformWindows,
	})
	require.Error(t, err)
	assert.Len(t, copied, 1, "files copied before the failure are reported")
	assert.Equal(t, []string{"gms.lib"}, listTree(t, dst), "already copied files stay on disk")
}

func TestSynchronizer_Sync_Recursive(t *testing.T) {
	sync, _ := newSynchronizer(t)
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "x64", "zlib.lib"), "zlib")
	writeFile(t, filepath.Join(src, "rive.lib"), "rive")
	writeFile(t, filepath.Join(src, "x64", "zlib.obj"), "obj")

	_, err := sync.Sync(domain.CopyRule{
		Src: src, Dst: dst, Ext: ".lib", Release: true, Rename: true, Recursive: true, Platform: domain.PlatformWindows,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"rive.lib", "x64/rive_zlib.lib"}, listTree(t, dst))
}

func TestSynchronizer_Sync_MissingSource(t *testing.T) {
	sync, mockLogger := newSynchronizer(t)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	dst := filepath.Join(t.TempDir(), "Libraries", "Win64")
	copied, err := sync.Sync(domain.CopyRule{
		Src: filepath.Join(t.TempDir(), "missing"), Dst: dst, Ext: ".lib", Rename: true, Platform: domain.PlatformWindows,
	})
	require.ErrorIs(t, err, domain.ErrSourceMissing)
	assert.Empty(t, copied)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "nothing is created at the destination")
}

func TestSynchronizer_Sync_Idempotent(t *testing.T) {
	sync, _ := newSynchronizer(t)
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "rive.a"), "rive")
	writeFile(t, filepath.Join(src, "libpng.a"), "png")

	old := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(src, "rive.a"), old, old))

	rule := domain.CopyRule{Src: src, Dst: dst, Ext: ".a", Rename: true, Platform: domain.PlatformWindows}
	hasher := fs.NewHasher(fs.NewWalker())

	_, err := sync.Sync(rule)
	require.NoError(t, err)
	first, err := hasher.ComputeTreeHash(dst)
	require.NoError(t, err)

	_, err = sync.Sync(rule)
	require.NoError(t, err)
	second, err := hasher.ComputeTreeHash(dst)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	info, err := os.Stat(filepath.Join(dst, "rive_d.a"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "mtime is preserved")
}

func TestSynchronizer_Mirror(t *testing.T) {
	sync, _ := newSynchronizer(t)
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "generated", "shaders", "draw.minified.glsl"), "min")
	writeFile(t, filepath.Join(src, "generated", "shaders", "draw.exports.h"), "exports")
	writeFile(t, filepath.Join(dst, "stale.h"), "stale")

	require.NoError(t, sync.Mirror(domain.MirrorRule{Src: src, Dst: dst, Exclude: []string{"*.minified.*"}}))
	assert.ElementsMatch(t, []string{"generated/shaders/draw.exports.h", "stale.h"}, listTree(t, dst))

	require.NoError(t, sync.Mirror(domain.MirrorRule{Src: src, Dst: dst, Replace: true}))
	assert.ElementsMatch(t, []string{"generated/shaders/draw.exports.h", "generated/shaders/draw.minified.glsl"}, listTree(t, dst))
}

func TestSynchronizer_Mirror_MissingSource(t *testing.T) {
	sync, mockLogger := newSynchronizer(t)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	err := sync.Mirror(domain.MirrorRule{Src: filepath.Join(t.TempDir(), "nope"), Dst: t.TempDir()})
	require.ErrorIs(t, err, domain.ErrSourceMissing)
}

func TestSynchronizer_Reset(t *testing.T) {
	sync, _ := newSynchronizer(t)
	root := t.TempDir()
	includes := filepath.Join(root, "Includes")
	generated := filepath.Join(root, "Generated")
	writeFile(t, filepath.Join(includes, "rive", "file.hpp"), "x")
	writeFile(t, filepath.Join(generated, "old.ush"), "x")

	require.NoError(t, sync.Reset(domain.ResetRule{Path: includes}))
	require.NoError(t, sync.Reset(domain.ResetRule{Path: generated, Recreate: true}))

	_, err := os.Stat(includes)
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(generated)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, sync.Reset(domain.ResetRule{Path: filepath.Join(root, "never-existed")}))
}

func TestSynchronizer_SimRename(t *testing.T) {
	sync, _ := newSynchronizer(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "rive.a"), "new")
	writeFile(t, filepath.Join(dir, "rive.sim.a"), "stale")
	writeFile(t, filepath.Join(dir, "obj", "libpng.a"), "png")
	writeFile(t, filepath.Join(dir, "rive.make"), "make")

	require.NoError(t, sync.SimRename(domain.SimRenameRule{Dir: dir}))
	assert.ElementsMatch(t, []string{"rive.sim.a", "obj/libpng.sim.a", "rive.make"}, listTree(t, dir))

	data, err := os.ReadFile(filepath.Join(dir, "rive.sim.a"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	// A second pass starts from .sim.a files only and removes them.
	require.NoError(t, sync.SimRename(domain.SimRenameRule{Dir: dir}))
	assert.Equal(t, []string{"rive.make"}, listTree(t, dir))
}

func TestSynchronizer_ConvertShaders(t *testing.T) {
	sync, _ := newSynchronizer(t)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "Generated")
	writeFile(t, filepath.Join(src, "draw_path.minified.glsl"), "path")
	writeFile(t, filepath.Join(src, "draw_image_mesh.minified.glsl"), "mesh")
	writeFile(t, filepath.Join(src, "draw_path.exports.h"), "exports")

	copied, err := sync.ConvertShaders(domain.ShaderRule{Src: src, Dst: dst})
	require.NoError(t, err)
	assert.Len(t, copied, 2)
	assert.ElementsMatch(t, []string{"draw_path.minified.ush", "draw_image_mesh.minified.ush"}, listTree(t, dst))
}
