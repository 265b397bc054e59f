// Package plan turns a resolved project into ordered build steps.
package plan

import (
	"path/filepath"
	"strings"

	"go.trai.ch/rivebuild/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	solutionFile = "./rive.sln"
	premakeFile  = "./premake5.lua"
	// testLibPrefix is the name prefix make gives static test libraries.
	testLibPrefix = "lib"
)

// Planner builds plans for one project.
type Planner struct {
	project *domain.Project
}

// New creates a Planner for project.
func New(project *domain.Project) *Planner {
	return &Planner{project: project}
}

// Platform returns the plan that compiles and synchronizes one platform and variant.
// Every command of the plan carries the environment of tool.
func (p *Planner) Platform(platform domain.Platform, variant domain.Variant, tool domain.ToolEnv) (*domain.Plan, error) {
	b := &builder{
		project:  p.project,
		platform: platform,
		variant:  variant,
		tool:     tool,
		plan:     &domain.Plan{Name: platform.String() + " " + string(variant)},
	}

	switch platform {
	case domain.PlatformWindows:
		b.windows()
	case domain.PlatformAndroid:
		b.android()
	case domain.PlatformMac:
		b.mac()
	case domain.PlatformIOS:
		b.ios()
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrPlatformNotBuildable, "no plan for platform"), "platform", string(platform))
	}
	return b.plan, nil
}

// Includes returns the plan that replaces the header and shader trees of the
// plugin. goos selects which release build tree carries the generated headers.
func (p *Planner) Includes(goos string) *domain.Plan {
	proj := p.project
	plan := &domain.Plan{Name: "includes"}

	generated := proj.OutDir("mac", "x64", string(domain.VariantRelease), "include")
	if goos == "windows" {
		generated = proj.OutDir("windows", string(domain.VariantRelease), "include")
	}

	plan.Add(domain.ResetStep("reset includes", domain.ResetRule{Path: proj.IncludesDir()}))
	plan.Add(domain.ResetStep("reset generated shaders", domain.ResetRule{Path: proj.GeneratedShadersDir(), Recreate: true}))

	for _, src := range []string{
		filepath.Join(proj.Runtime, "include"),
		filepath.Join(proj.Runtime, "renderer", "include"),
		filepath.Join(proj.Runtime, "decoders", "include"),
	} {
		plan.Add(domain.MirrorStep("mirror "+src, domain.MirrorRule{Src: src, Dst: proj.IncludesDir()}))
	}

	shaderSrc := filepath.Join(proj.Runtime, "renderer", "src", "shaders", "unreal")
	plan.Add(domain.MirrorStep("mirror shader sources", domain.MirrorRule{Src: shaderSrc, Dst: proj.ShadersDir()}))

	plan.Add(domain.MirrorStep("mirror generated includes", domain.MirrorRule{
		Src:     generated,
		Dst:     filepath.Join(proj.IncludesDir(), "rive"),
		Exclude: []string{"*." + domain.MinifiedMarker + ".*"},
	}))
	plan.Add(domain.ShadersStep("convert generated shaders", domain.ShaderRule{
		Src: filepath.Join(generated, "generated", "shaders"),
		Dst: proj.GeneratedShadersDir(),
	}))

	return plan
}

type builder struct {
	project  *domain.Project
	platform domain.Platform
	variant  domain.Variant
	tool     domain.ToolEnv
	plan     *domain.Plan
}

// withTests reports whether test targets are built. Tests only build in release.
func (b *builder) withTests() bool {
	return b.project.Tests && b.variant.IsRelease()
}

func (b *builder) label(parts ...string) string {
	return strings.Join(append([]string{b.platform.String(), string(b.variant)}, parts...), " ")
}

// workDir is the directory the generator runs in.
func (b *builder) workDir() string {
	if b.withTests() && b.platform != domain.PlatformAndroid {
		return filepath.Join(b.project.Runtime, "tests")
	}
	return filepath.Join(b.project.Runtime, "renderer")
}

func (b *builder) generatorArgs() []string {
	args := []string{
		"--scripts=" + filepath.Join(b.project.Runtime, "build"),
		"--file=" + premakeFile,
		"--with_rive_text",
	}
	if b.project.RawShaders {
		args = append(args, "--raw_shaders")
	}
	return append(args,
		"--with_rive_audio=external",
		"--for_unreal",
		"--config="+string(b.variant),
	)
}

// generate runs the generator writing into out.
func (b *builder) generate(label, out string, extra ...string) {
	cmd := domain.Command{
		Name: b.project.Generator,
		Args: append(b.generatorArgs(), extra...),
		Dir:  b.workDir(),
	}
	b.plan.Add(domain.CompileStep(domain.NewGeneratorAttempt(b.label(label), cmd.WithEnv(b.tool.Env), out)))
}

func (b *builder) compile(label, dir string, args ...string) {
	cmd := domain.Command{Name: b.tool.BuildTool, Args: args, Dir: dir}
	b.plan.Add(domain.CompileStep(domain.NewCompileAttempt(b.label(label), cmd.WithEnv(b.tool.Env))))
}

func (b *builder) targets() []string {
	if b.withTests() {
		return b.project.AllTargets()
	}
	return b.project.Targets
}

// makeTargets runs make once per target in dir.
func (b *builder) makeTargets(prefix, dir string) {
	for _, target := range b.targets() {
		b.compile(prefix+" make "+target, dir, target)
	}
}

func (b *builder) sync(rule domain.CopyRule) {
	rule.Platform = b.platform
	b.plan.Add(domain.SyncStep(b.label("sync", rule.Ext, rule.Dst), rule))
}

// testLibraries are the file stems make gives the test targets.
func (b *builder) testLibraries() []string {
	libs := make([]string, 0, len(b.project.TestTargets))
	for _, t := range b.project.TestTargets {
		libs = append(libs, testLibPrefix+t)
	}
	return libs
}

func (b *builder) windows() {
	out := b.project.OutDir("windows", string(b.variant))
	b.generate("generate", out, "--os=windows", "--out="+out, "vs2022")
	b.compile("msbuild", out, solutionFile, "/t:"+strings.Join(b.targets(), ";"))

	b.sync(domain.CopyRule{
		Src:     out,
		Dst:     b.project.LibrariesDir("Win64"),
		Ext:     domain.ImportLibExt,
		Release: b.variant.IsRelease(),
		Rename:  true,
	})
	if b.withTests() {
		b.sync(domain.CopyRule{
			Src:     out,
			Dst:     b.project.GMLibrariesDir("x64", "Release"),
			Ext:     domain.ImportLibExt,
			Release: true,
			Files:   b.project.TestTargets,
		})
	}
}

func (b *builder) android() {
	out := b.project.OutDir("android", string(b.variant))
	b.generate("generate", out, "--os=android", "--arch=arm64", "--out="+out, "vs2022")
	b.compile("msbuild", out, solutionFile, "/t:"+strings.Join(b.project.Targets, ";"))

	b.sync(domain.CopyRule{
		Src:     filepath.Join(out, "ARM64", "default"),
		Dst:     b.project.LibrariesDir("Android"),
		Ext:     domain.StaticLibExt,
		Release: b.variant.IsRelease(),
		Rename:  true,
	})
}

func (b *builder) mac() {
	arches := []struct {
		arch, libDir, testDir string
	}{
		{"x64", "Intel", "x64"},
		{"arm64", "Mac", "arm"},
	}

	outs := make([]string, len(arches))
	for i, a := range arches {
		outs[i] = b.project.OutDir("mac", a.arch, string(b.variant))
		b.generate(a.arch+" generate", outs[i], "--os=macosx", "gmake2", "--arch="+a.arch, "--out="+outs[i])
		b.makeTargets(a.arch, outs[i])
	}

	for i, a := range arches {
		b.sync(domain.CopyRule{
			Src:     outs[i],
			Dst:     b.project.LibrariesDir("Mac", a.libDir),
			Ext:     domain.StaticLibExt,
			Release: b.variant.IsRelease(),
			Rename:  true,
		})
	}
	if !b.withTests() {
		return
	}
	// arm64 first, as the GM plugin expects.
	for _, i := range []int{1, 0} {
		b.sync(domain.CopyRule{
			Src:     outs[i],
			Dst:     b.project.GMLibrariesDir("Mac", arches[i].testDir),
			Ext:     domain.StaticLibExt,
			Release: true,
			Files:   b.testLibraries(),
		})
	}
}

func (b *builder) ios() {
	device := b.project.OutDir("ios", string(b.variant))
	b.generate("device generate", device, "gmake2", "--os=ios", "--variant=system", "--out="+device)
	b.makeTargets("device", device)

	sim := b.project.OutDir("ios_sim", string(b.variant))
	b.generate("simulator generate", sim, "gmake2", "--os=ios", "--variant=emulator", "--out="+sim)
	b.makeTargets("simulator", sim)

	b.plan.Add(domain.SimRenameStep(b.label("simulator rename"), domain.SimRenameRule{Dir: sim}))

	dst := b.project.LibrariesDir("IOS")
	b.sync(domain.CopyRule{Src: device, Dst: dst, Ext: domain.StaticLibExt, Release: b.variant.IsRelease(), Rename: true})
	b.sync(domain.CopyRule{Src: sim, Dst: dst, Ext: domain.SimLibExt, Release: b.variant.IsRelease(), Rename: true})

	if b.withTests() {
		gm := b.project.GMLibrariesDir("iOS")
		b.sync(domain.CopyRule{Src: device, Dst: gm, Ext: domain.StaticLibExt, Release: true, Files: b.testLibraries()})
		b.sync(domain.CopyRule{Src: sim, Dst: gm, Ext: domain.SimLibExt, Release: true, Files: b.testLibraries()})
	}
}
