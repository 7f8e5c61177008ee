//go:build js && wasm

// Command pagekit-wasm mounts the controllers on the page that loads it.
//
// Options may be supplied as YAML in
// <script type="application/yaml" id="pagekit-config">.
package main

import (
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/atomicstack/pagekit/internal/config"
	"github.com/atomicstack/pagekit/internal/dom/jsdom"
	"github.com/atomicstack/pagekit/internal/page"
	"github.com/atomicstack/pagekit/internal/widget"
)

const configID = "pagekit-config"

func main() {
	zl, err := zap.NewDevelopment()
	if err != nil {
		zl = zap.NewNop()
	}
	log := zapr.NewLogger(zl)

	doc := jsdom.New()
	opts := page.DefaultOptions()
	if script := doc.ByID(configID); script != nil {
		file, err := config.ParseFile([]byte(script.Text()), opts)
		if err != nil {
			log.Error(err, "ignoring page config")
		} else {
			opts = file.Page
		}
	}

	env := widget.Env{Doc: doc, Scheduler: jsdom.Scheduler(), Log: log}
	p := page.Mount(env, opts)
	for _, err := range p.Disabled {
		log.Info("controller disabled", "reason", err.Error())
	}
	select {}
}
