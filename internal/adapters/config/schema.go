package config

// SupportedVersion is the only configuration schema version understood.
const SupportedVersion = "1"

// Rivefile represents the structure of the rivebuild.yaml configuration file.
type Rivefile struct {
	Version               string   `yaml:"version"`
	Runtime               string   `yaml:"runtime"`
	GM                    string   `yaml:"gm"`
	Out                   string   `yaml:"out"`
	Generator             string   `yaml:"generator"`
	MacOSDeploymentTarget string   `yaml:"macosDeploymentTarget"`
	State                 string   `yaml:"state"`
	Targets               []string `yaml:"targets"`
	TestTargets           []string `yaml:"testTargets"`
}
