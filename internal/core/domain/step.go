package domain

// StepKind identifies what a plan step does.
type StepKind int

const (
	// StepCompile runs a compile attempt.
	StepCompile StepKind = iota
	// StepSync runs a synchronization pass.
	StepSync
	// StepSimRename renames simulator libraries.
	StepSimRename
	// StepMirror copies a directory tree.
	StepMirror
	// StepReset deletes a directory.
	StepReset
	// StepShaders converts generated shaders.
	StepShaders
)

// String returns the step kind name.
func (k StepKind) String() string {
	switch k {
	case StepCompile:
		return "compile"
	case StepSync:
		return "sync"
	case StepSimRename:
		return "sim-rename"
	case StepMirror:
		return "mirror"
	case StepReset:
		return "reset"
	case StepShaders:
		return "shaders"
	default:
		return "unknown"
	}
}

// Step is one unit of a build plan. Exactly one of the rule fields is set,
// matching Kind.
type Step struct {
	Kind  StepKind
	Label string

	Attempt   *CompileAttempt
	Copy      *CopyRule
	SimRename *SimRenameRule
	Mirror    *MirrorRule
	Reset     *ResetRule
	Shaders   *ShaderRule
}

// Plan is an ordered list of steps for one platform or for the include sync.
type Plan struct {
	Name  string
	Steps []Step
}

// Add appends a step to the plan.
func (p *Plan) Add(step Step) {
	p.Steps = append(p.Steps, step)
}

// CompileStep wraps a compile attempt.
func CompileStep(a *CompileAttempt) Step {
	return Step{Kind: StepCompile, Label: a.Label, Attempt: a}
}

// SyncStep wraps a copy rule.
func SyncStep(label string, r CopyRule) Step {
	return Step{Kind: StepSync, Label: label, Copy: &r}
}

// SimRenameStep wraps a simulator rename rule.
func SimRenameStep(label string, r SimRenameRule) Step {
	return Step{Kind: StepSimRename, Label: label, SimRename: &r}
}

// MirrorStep wraps a mirror rule.
func MirrorStep(label string, r MirrorRule) Step {
	return Step{Kind: StepMirror, Label: label, Mirror: &r}
}

// ResetStep wraps a reset rule.
func ResetStep(label string, r ResetRule) Step {
	return Step{Kind: StepReset, Label: label, Reset: &r}
}

// ShadersStep wraps a shader conversion rule.
func ShadersStep(label string, r ShaderRule) Step {
	return Step{Kind: StepShaders, Label: label, Shaders: &r}
}
