package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/system.txt
	systemRaw string

	//go:embed template/greeting.txt
	greetingRaw string
)

// Set holds loaded prompt content.
type Set struct {
	System   string
	Greeting string
}

// Load returns the prompt set with trimmed content. Safe to call
// concurrently; the embed is compile-time.
func Load() Set {
	return Set{
		System:   strings.TrimSpace(systemRaw),
		Greeting: strings.TrimSpace(greetingRaw),
	}
}
