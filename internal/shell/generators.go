// Package shell generates the code that registers fastcomplete with a shell.
package shell

import (
	"fmt"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

const (
	shellBash = "bash"
	shellZsh  = "zsh"
)

// SupportedShells lists the shells hook code can be generated for
var SupportedShells = []string{shellBash, shellZsh}

// Registration describes what to register: the fastcomplete binary and the programs it completes
type Registration struct {
	Binary   string
	Programs []string
}

// CodeGenerator generates shell-specific registration code
type CodeGenerator interface {
	// Generate returns the code to source in the shell's rc file
	Generate(r Registration) (string, error)
	// Name returns the shell name (bash, zsh)
	Name() string
}

// BashCodeGenerator generates bash registration code
type BashCodeGenerator struct{}

// Name returns the shell name for bash
func (b *BashCodeGenerator) Name() string {
	return shellBash
}

// Generate renders the bash completion function and its complete -F registration
func (b *BashCodeGenerator) Generate(r Registration) (string, error) {
	if r.Binary == "" {
		return "", fmt.Errorf("no fastcomplete binary given")
	}
	if len(r.Programs) == 0 {
		return "", fmt.Errorf("no program to register")
	}

	binary, err := quote(r.Binary)
	if err != nil {
		return "", err
	}
	programs := make([]string, 0, len(r.Programs))
	for _, p := range r.Programs {
		q, err := quote(p)
		if err != nil {
			return "", err
		}
		programs = append(programs, q)
	}

	return fmt.Sprintf(bashTemplate, binary, strings.Join(programs, " ")), nil
}

// ZshCodeGenerator generates zsh registration code on top of bashcompinit
type ZshCodeGenerator struct {
	bash BashCodeGenerator
}

// Name returns the shell name for zsh
func (z *ZshCodeGenerator) Name() string {
	return shellZsh
}

// Generate renders the zsh preamble followed by the bash registration
func (z *ZshCodeGenerator) Generate(r Registration) (string, error) {
	code, err := z.bash.Generate(r)
	if err != nil {
		return "", err
	}
	return zshPreamble + code, nil
}

// NewCodeGenerator returns the generator for a shell name
func NewCodeGenerator(shell string) (CodeGenerator, error) {
	switch shell {
	case shellBash:
		return &BashCodeGenerator{}, nil
	case shellZsh:
		return &ZshCodeGenerator{}, nil
	default:
		return nil, fmt.Errorf("unsupported shell %q (supported: %s)", shell, strings.Join(SupportedShells, ", "))
	}
}

// Detect derives the shell name from a $SHELL value, defaulting to bash
func Detect(shellPath string) string {
	if name := filepath.Base(shellPath); name == shellZsh {
		return shellZsh
	}
	return shellBash
}

func quote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("cannot quote %q for the shell: %w", s, err)
	}
	return q, nil
}
