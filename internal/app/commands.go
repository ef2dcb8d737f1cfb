package app

import (
	"errors"
	"fmt"
	"strings"

	"ar-furniture/internal/commands"
)

var errUsage = errors.New("usage")

func (a *App) registerCommands() {
	r := a.Commands
	r.Register("help", "list commands", nil, func([]string) error {
		for _, line := range r.Help() {
			a.Log.Log(line)
		}
		return nil
	})
	r.Register("start", "start the AR session", nil, func([]string) error {
		return a.Session.Start(a.ctx)
	})
	r.Register("exit", "end the AR session", nil, func([]string) error {
		a.Exit()
		return nil
	})
	r.Register("select", "<type>: choose the furniture type to place ("+strings.Join(a.Catalog.IDs(), ", ")+")", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: cmd select <type>", errUsage)
		}
		return a.Placement.SelectFurnitureType(args[0])
	})
	r.Register("place", "place the selected type at the reticle", nil, func([]string) error {
		if !a.ControllerSelect() {
			return errors.New("nothing to place: needs an active session, a visible reticle and a selected type")
		}
		return nil
	})
	r.Register("delete", "delete the selected item", nil, func([]string) error {
		return a.Placement.DeleteSelected()
	})
	r.Register("list", "list placed furniture", nil, func([]string) error {
		items := a.Placement.Items()
		if len(items) == 0 {
			a.Log.Log("no furniture placed")
		}
		for i, it := range items {
			p := it.Node.Position
			mark := ""
			if it == a.Placement.Selected() {
				mark = " (selected)"
			}
			a.Log.Logf("%d. %s at %.2f, %.2f, %.2f%s", i+1, it.Type, p[0], p[1], p[2], mark)
		}
		return nil
	})
	r.Register("status", "show session and placement state", nil, func([]string) error {
		_, reticle := a.Tracker.Pose()
		selected := "none"
		if s := a.Placement.Selected(); s != nil {
			selected = s.Type
		}
		pending := a.Placement.PendingType()
		if pending == "" {
			pending = "none"
		}
		a.Log.Logf("session=%s supported=%t items=%d selected=%s pending=%s reticle=%t loading=%d",
			a.Session.State(), a.Session.Supported(), len(a.Placement.Items()), selected, pending, reticle, a.Placement.Loading())
		a.Log.Logf("instruction: %s", a.Layout.Status())
		return nil
	})
	a.registerToggle("fps", "--show|--hide: frames-per-second overlay", &a.ShowFPS)
	a.registerToggle("memalloc", "--show|--hide: memory allocation overlay", &a.ShowMemAlloc)
	a.registerToggle("grid", "--show|--hide: floor grid", &a.ShowGrid)
}

func (a *App) registerToggle(name, usage string, target *bool) {
	fs := commands.NewFlagSet(name)
	show := fs.Bool("show", false, "show the overlay")
	hide := fs.Bool("hide", false, "hide the overlay")
	a.Commands.Register(name, usage, fs, func([]string) error {
		switch {
		case *show && !*hide:
			*target = true
		case *hide && !*show:
			*target = false
		default:
			return fmt.Errorf("%w: cmd %s --show|--hide", errUsage, name)
		}
		return nil
	})
}
