package main

import (
	"fmt"
	"strings"

	"github.com/example/touchpaint/internal/platform"
)

type titleOptions struct {
	Mode   string
	Driver string
	Extras []string
}

func windowTitle(opts titleOptions) string {
	parts := []string{platform.AppName}

	if mode := strings.TrimSpace(opts.Mode); mode != "" {
		parts = append(parts, mode)
	}

	extras := make([]string, 0, len(opts.Extras)+3)
	if driver := strings.TrimSpace(opts.Driver); driver != "" {
		extras = append(extras, driver)
	}
	if strings.TrimSpace(version) != "" {
		extras = append(extras, fmt.Sprintf("v%s", strings.TrimSpace(version)))
	}
	if strings.TrimSpace(commit) != "" {
		extras = append(extras, fmt.Sprintf("commit %s", strings.TrimSpace(commit)))
	}
	extras = append(extras, opts.Extras...)

	return strings.Join(append(parts, extras...), " - ")
}
