package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rivebuild/internal/adapters/shell"
	"go.trai.ch/rivebuild/internal/core/domain"
)

func TestDisplay(t *testing.T) {
	cmd := domain.Command{
		Name: "premake5",
		Args: []string{"--config=release", "--file=./premake5.lua", "vs2022", "with space"},
		Dir:  "/runtime/renderer",
	}

	assert.Equal(t,
		"premake5 '--config=release' '--file=./premake5.lua' vs2022 'with space' (in /runtime/renderer)",
		shell.Display(cmd),
	)
}

func TestDisplay_NoDir(t *testing.T) {
	assert.Equal(t, "make rive", shell.Display(domain.Command{Name: "make", Args: []string{"rive"}}))
}
