// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rivebuild/internal/adapters/cas"
	_ "go.trai.ch/rivebuild/internal/adapters/config"
	_ "go.trai.ch/rivebuild/internal/adapters/fs"
	_ "go.trai.ch/rivebuild/internal/adapters/logger"
	_ "go.trai.ch/rivebuild/internal/adapters/shell"
	_ "go.trai.ch/rivebuild/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/rivebuild/internal/adapters/toolchain"
	// Register app and engine nodes.
	_ "go.trai.ch/rivebuild/internal/app"
	_ "go.trai.ch/rivebuild/internal/engine/pipeline"
)
