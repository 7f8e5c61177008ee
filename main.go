package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/pagekit/cmd"
	"github.com/atomicstack/pagekit/internal/logging"
)

func main() {
	code := 0
	if err := cmd.Execute(); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		code = 1
		if errors.Is(err, cmd.ErrConfig) {
			code = 2
		}
	}
	logging.Sync()
	os.Exit(code)
}
