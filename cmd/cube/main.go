package main

import (
	"flag"
	"fmt"
	"os"

	"cube-engine/internal/animator"
	"cube-engine/internal/commands"
	"cube-engine/internal/debug"
	"cube-engine/internal/engineconfig"
	"cube-engine/internal/env"
	"cube-engine/internal/gesture"
	"cube-engine/internal/graphics"
	"cube-engine/internal/input"
	"cube-engine/internal/lattice"
	"cube-engine/internal/logger"
	"cube-engine/internal/picking"
	"cube-engine/internal/render"
	"cube-engine/internal/resolver"
	"cube-engine/internal/scene"
	"cube-engine/internal/terminal"

	"gopkg.in/yaml.v3"
)

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, ".env:", err)
	}
	log := logger.New(env.Get(env.LogKey, logger.DefaultPath))
	defaultConfig := env.Get(env.ConfigKey, engineconfig.DefaultPath)

	reg := commands.NewRegistry("play")

	playFlags := flag.NewFlagSet("play", flag.ExitOnError)
	playConfig := playFlags.String("config", defaultConfig, "config file")
	reg.Register("play", "open the puzzle window (default)", playFlags, func() error {
		return play(*playConfig, log)
	})

	configFlags := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := configFlags.String("config", defaultConfig, "config file")
	write := configFlags.Bool("write", false, "write the defaults to the config file")
	reg.Register("config", "print the effective config, or write the defaults with -write", configFlags, func() error {
		if *write {
			if err := engineconfig.Save(*configPath, engineconfig.Default()); err != nil {
				return err
			}
			fmt.Println("wrote", *configPath)
			return nil
		}
		prefs, err := engineconfig.Load(*configPath)
		if err != nil {
			return err
		}
		return yaml.NewEncoder(os.Stdout).Encode(prefs)
	})

	if err := reg.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "usage: cube [command] [flags]")
		reg.PrintUsage(os.Stderr)
		os.Exit(2)
	}
}

func play(configPath string, log *logger.Logger) error {
	prefs, err := engineconfig.Load(configPath)
	if err != nil {
		log.Logf("config: %v, using defaults", err)
	}
	theme, err := render.NewTheme(prefs)
	if err != nil {
		return err
	}

	lat := lattice.New(prefs.CubieSize, prefs.Gap)
	anim := animator.New(lat, prefs.StepSize, log)
	scn := scene.New(lat, render.New(theme), prefs.CameraDistance, prefs.CameraFovy)
	machine := gesture.New(lat, resolver.New(prefs.Tolerance()), anim, scn, log)
	mouse := input.NewMouse(picking.New(lat, &scn.Camera), machine)

	overlay := debug.New()
	overlay.ShowFPS = prefs.ShowFPS
	overlay.ShowMemAlloc = prefs.ShowMemAlloc
	overlay.ShowState = prefs.ShowState

	term := terminal.New(log, consoleCommands(lat, anim, overlay, log))

	log.Logf("puzzle ready: %d cubies, size %.2f, gap %.2f, epsilon %.3f", lat.Len(), prefs.CubieSize, prefs.Gap, prefs.Tolerance())

	update := func() {
		term.Update()
		mouse.Update()
		scn.Update()
		machine.Tick()
	}
	draw := func() {
		scn.Draw()
		overlay.Draw(status(machine, anim))
		term.Draw()
	}
	graphics.Run(graphics.Window{
		Title:      prefs.WindowTitle,
		Width:      1280,
		Height:     800,
		TargetFPS:  prefs.TargetFPS,
		Background: theme.Background,
	}, update, draw)

	if snap, err := lat.Snapshot(); err == nil {
		log.Logf("session ended: %d of %d cubies displaced", snap.Displaced(), len(snap.Cubies))
	}
	return nil
}

func status(m *gesture.Machine, a *animator.Animator) string {
	if !a.Active() {
		return m.Phase().String()
	}
	s := a.State()
	return fmt.Sprintf("%s %.2f / %.2f rad", m.Phase(), s.Angle, s.Target)
}
