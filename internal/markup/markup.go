// Package markup embeds the default page served by the terminal host and
// the render command.
package markup

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed page.html
var page string

// Default returns the embedded page.
func Default() string { return page }

// Load returns the page at path, or the embedded page when path is empty.
func Load(path string) (string, error) {
	if path == "" {
		return page, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read markup: %w", err)
	}
	return string(data), nil
}
