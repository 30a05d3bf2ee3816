package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"cube-engine/internal/animator"
	"cube-engine/internal/commands"
	"cube-engine/internal/debug"
	"cube-engine/internal/lattice"
	"cube-engine/internal/logger"
)

// consoleCommands builds the registry behind the in-game terminal.
func consoleCommands(lat *lattice.Lattice, anim *animator.Animator, overlay *debug.Debug, log *logger.Logger) *commands.Registry {
	reg := commands.NewRegistry("help")

	toggle(reg, "fps", "show or hide the FPS counter", &overlay.ShowFPS)
	toggle(reg, "memalloc", "show or hide heap usage", &overlay.ShowMemAlloc)
	toggle(reg, "state", "show or hide the gesture state", &overlay.ShowState)

	reg.Register("reset", "return every cubie to its home cell", newFlagSet("reset"), func() error {
		if anim.Active() {
			return fmt.Errorf("reset: %w", animator.ErrBusy)
		}
		if err := lat.Reset(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		log.Log("puzzle reset")
		return nil
	})

	reg.Register("status", "report how many cubies are off their home cell", newFlagSet("status"), func() error {
		snap, err := lat.Snapshot()
		if err != nil {
			return err
		}
		log.Logf("%d of %d cubies displaced", snap.Displaced(), len(snap.Cubies))
		return nil
	})

	reg.Register("help", "list terminal commands", newFlagSet("help"), func() error {
		var b strings.Builder
		reg.PrintUsage(&b)
		for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
			log.Log(line)
		}
		return nil
	})
	return reg
}

// toggle registers a command that sets target with -show or -hide and flips it otherwise.
func toggle(reg *commands.Registry, name, usage string, target *bool) {
	fs := newFlagSet(name)
	show := fs.Bool("show", false, "turn on")
	hide := fs.Bool("hide", false, "turn off")
	reg.Register(name, usage, fs, func() error {
		switch {
		case *show:
			*target = true
		case *hide:
			*target = false
		default:
			*target = !*target
		}
		*show, *hide = false, false
		return nil
	})
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
