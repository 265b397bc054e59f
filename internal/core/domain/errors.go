package domain

import "go.trai.ch/zerr"

var (
	// ErrSourceMissing is returned when a synchronization source directory does not exist.
	ErrSourceMissing = zerr.New("source directory missing")

	// ErrCompileFailed is returned when a compile attempt ends in the failed status.
	ErrCompileFailed = zerr.New("compile attempt failed")

	// ErrUnsupportedPlatform is returned when the host operating system cannot build any target.
	ErrUnsupportedPlatform = zerr.New("unsupported host platform")

	// ErrInvalidPlatform is returned when a platform name cannot be parsed.
	ErrInvalidPlatform = zerr.New("invalid platform")

	// ErrPlatformNotBuildable is returned when a requested platform is not buildable on this host.
	ErrPlatformNotBuildable = zerr.New("platform not buildable on this host")

	// ErrBuildExecutionFailed is returned when a build run is aborted.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrMSBuildNotFound is returned when no Visual Studio 2022 MSBuild installation is found.
	ErrMSBuildNotFound = zerr.New("MSBuild not found, Visual Studio 2022 is required")

	// ErrArtifactMismatch is returned when recorded artifacts are missing or modified.
	ErrArtifactMismatch = zerr.New("artifacts do not match recorded state")

	// ErrRuntimeNotFound is returned when the runtime checkout does not exist.
	ErrRuntimeNotFound = zerr.New("runtime checkout not found")

	// ErrEmptyCommand is returned when a command has no executable name.
	ErrEmptyCommand = zerr.New("empty command")
)
