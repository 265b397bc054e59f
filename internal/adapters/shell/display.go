package shell

import (
	"strconv"
	"strings"

	"go.trai.ch/rivebuild/internal/core/domain"
	"mvdan.cc/sh/v3/syntax"
)

// Display renders a command as a copy-pasteable shell line.
func Display(cmd domain.Command) string {
	argv := cmd.Argv()
	parts := make([]string, len(argv))
	for i, arg := range argv {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			quoted = strconv.Quote(arg)
		}
		parts[i] = quoted
	}
	line := strings.Join(parts, " ")
	if cmd.Dir != "" {
		line += " (in " + cmd.Dir + ")"
	}
	return line
}
