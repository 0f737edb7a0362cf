package main

import (
	"flag"
	"log"

	"github.com/hubastard/cratepush/engine/core"
	glbackend "github.com/hubastard/cratepush/engine/gfx/gl"
	"github.com/hubastard/cratepush/engine/platform"
	"github.com/hubastard/cratepush/engine/profiler"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (defaults apply when empty)")
	profileEvents := flag.Int("profile", 0, "profiler ring size in events, 0 disables; Ctrl+P dumps")
	flag.Parse()

	cfg := core.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = core.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	profiler.Init(*profileEvents)

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewWindow(cfg)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.New(win, cfg)
	}

	if err := core.Run(&App{}, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
