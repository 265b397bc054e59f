package domain

import "path/filepath"

const (
	// DefaultGenerator is the build generator invoked for every compile pass.
	DefaultGenerator = "premake5"
	// DefaultMacDeploymentTarget is exported as MACOSX_DEPLOYMENT_TARGET on darwin hosts.
	DefaultMacDeploymentTarget = "11.0"
	// DefaultStatePath is the artifact state file, relative to the plugin root.
	DefaultStatePath = ".rivebuild/state.json"
	// DefaultConfigFile is the configuration file name, relative to the plugin root.
	DefaultConfigFile = "rivebuild.yaml"
	// JournalFile is the progress journal written next to the state file.
	JournalFile = "progress.jsonl"
)

// DefaultTargets are the runtime libraries copied into the plugin.
var DefaultTargets = []string{
	"rive",
	"rive_decoders",
	"rive_harfbuzz",
	"rive_pls_renderer",
	"rive_sheenbidi",
	"rive_yoga",
	"libpng",
	"libjpeg",
	"libwebp",
	"zlib",
}

// DefaultTestTargets are the libraries copied into the GM plugin when tests are built.
var DefaultTestTargets = []string{"gms", "goldens", "tools_common"}

// Project is the resolved configuration of a build run.
type Project struct {
	// PluginRoot is the root of the Unreal plugin receiving the artifacts.
	PluginRoot string
	// Runtime is the root of the runtime checkout.
	Runtime string
	// GM is the root of the GM test plugin.
	GM string
	// OutRoot is the directory the generator writes build trees into.
	OutRoot string
	// Generator is the build generator executable.
	Generator string
	// MacDeploymentTarget is the minimum macOS version.
	MacDeploymentTarget string
	// StatePath is the artifact state file.
	StatePath string

	Targets     []string
	TestTargets []string

	// Tests also builds and copies the test targets.
	Tests bool
	// RawShaders passes --raw_shaders to the generator.
	RawShaders bool
	// Platforms restricts the run to a subset of the host platforms.
	Platforms []Platform
}

// JournalPath returns the progress journal of the run, next to the state file.
func (p *Project) JournalPath() string {
	return filepath.Join(filepath.Dir(p.StatePath), JournalFile)
}

// LibraryRoot returns the root of the third party library tree in the plugin.
func (p *Project) LibraryRoot() string {
	return filepath.Join(p.PluginRoot, "Source", "ThirdParty", "RiveLibrary")
}

// LibrariesDir returns the artifact directory for a platform sub path.
func (p *Project) LibrariesDir(parts ...string) string {
	return filepath.Join(append([]string{p.LibraryRoot(), "Libraries"}, parts...)...)
}

// IncludesDir returns the header tree in the plugin.
func (p *Project) IncludesDir() string {
	return filepath.Join(p.LibraryRoot(), "Includes")
}

// ShadersDir returns the private shader tree in the plugin.
func (p *Project) ShadersDir() string {
	return filepath.Join(p.PluginRoot, "Shaders", "Private", "Rive")
}

// GeneratedShadersDir returns the generated shader tree in the plugin.
func (p *Project) GeneratedShadersDir() string {
	return filepath.Join(p.ShadersDir(), "Generated")
}

// GMLibrariesDir returns the test artifact directory of the GM plugin.
func (p *Project) GMLibrariesDir(parts ...string) string {
	base := []string{p.GM, "Source", "ThirdParty", "GMLibrary", "Libraries"}
	return filepath.Join(append(base, parts...)...)
}

// OutDir returns a build tree below the out root.
func (p *Project) OutDir(parts ...string) string {
	return filepath.Join(append([]string{p.OutRoot}, parts...)...)
}

// AllTargets returns the targets followed by the test targets when tests are enabled.
func (p *Project) AllTargets() []string {
	targets := append([]string{}, p.Targets...)
	if p.Tests {
		targets = append(targets, p.TestTargets...)
	}
	return targets
}
