package main

import (
	"fmt"
	"os"

	"ar-furniture/internal/app"
	"ar-furniture/internal/asset"
	"ar-furniture/internal/catalog"
	"ar-furniture/internal/config"
	"ar-furniture/internal/logger"
	"ar-furniture/internal/render"
	"ar-furniture/internal/xr/sim"

	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	if err := config.LoadEnv(".env", "../../.env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}
	prefs, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	prefs.ApplyEnv()
	log := logger.New(prefs.LogPath)

	cat := catalog.Default()
	if prefs.CatalogPath != "" {
		if cat, err = catalog.Load(prefs.CatalogPath); err != nil {
			fmt.Fprintln(os.Stderr, "catalog:", err)
			os.Exit(1)
		}
	}
	loader := asset.NewLoader(prefs.AssetRoot)

	var a *app.App
	platform := sim.New(sim.Options{
		Unsupported:    prefs.SimulateUnsupported,
		RejectSessions: prefs.SimulateStartFailure,
		HitRange:       prefs.HitRange,
		Viewer: func() (mgl32.Vec3, mgl32.Vec3) {
			return a.Viewer()()
		},
	})
	a = app.New(app.Deps{
		Catalog:  cat,
		Platform: platform,
		Loader:   loader,
		Log:      log,
		Width:    float32(prefs.WindowWidth),
		Height:   float32(prefs.WindowHeight),
	})
	a.ShowFPS = prefs.ShowFPS
	a.ShowMemAlloc = prefs.ShowMemAlloc
	a.ShowGrid = prefs.GridVisible
	log.Logf("ar-furniture: %d furniture types, assets under %s", cat.Len(), prefs.AssetRoot)
	a.Init()

	render.Run(a, prefs, loader)
}
