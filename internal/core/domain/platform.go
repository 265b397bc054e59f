package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Platform identifies a target platform the runtime is compiled for.
type Platform string

const (
	// PlatformWindows builds x64 import libraries with MSBuild.
	PlatformWindows Platform = "windows"
	// PlatformAndroid builds arm64 static libraries with MSBuild.
	PlatformAndroid Platform = "android"
	// PlatformMac builds x64 and arm64 static libraries with make.
	PlatformMac Platform = "mac"
	// PlatformIOS builds device and simulator static libraries with make.
	PlatformIOS Platform = "ios"
)

// String returns the platform name.
func (p Platform) String() string {
	return string(p)
}

// IsApple reports whether the platform is built by the Apple toolchain.
// Apple artifacts never receive the library name prefix.
func (p Platform) IsApple() bool {
	return p == PlatformMac || p == PlatformIOS
}

// ParsePlatform converts a user supplied name into a Platform.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows", "win64", "win":
		return PlatformWindows, nil
	case "android":
		return PlatformAndroid, nil
	case "mac", "macos", "macosx", "darwin":
		return PlatformMac, nil
	case "ios":
		return PlatformIOS, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidPlatform, "unknown platform"), "platform", name)
	}
}

// HostPlatforms returns the platforms a host operating system builds, in build order.
func HostPlatforms(goos string) ([]Platform, error) {
	switch goos {
	case "darwin":
		return []Platform{PlatformMac, PlatformIOS}, nil
	case "windows":
		return []Platform{PlatformWindows, PlatformAndroid}, nil
	default:
		return nil, zerr.With(zerr.Wrap(ErrUnsupportedPlatform, "no targets for host"), "os", goos)
	}
}

// Variant is the build configuration of a compile pass.
type Variant string

const (
	// VariantRelease is the optimized configuration.
	VariantRelease Variant = "release"
	// VariantDebug is the debug configuration.
	VariantDebug Variant = "debug"
)

// Variants lists the configurations in build order.
var Variants = []Variant{VariantRelease, VariantDebug}

// IsRelease reports whether the variant is the release configuration.
func (v Variant) IsRelease() bool {
	return v == VariantRelease
}
