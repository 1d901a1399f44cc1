// File: cmd/cuberenderer/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voxelfleet/cuberenderer/internal/actorkit"
	"github.com/voxelfleet/cuberenderer/internal/artnet"
	"github.com/voxelfleet/cuberenderer/internal/config"
	"github.com/voxelfleet/cuberenderer/internal/controller"
	"github.com/voxelfleet/cuberenderer/internal/errs"
	"github.com/voxelfleet/cuberenderer/internal/lobby"
	"github.com/voxelfleet/cuberenderer/internal/monitor"
	"github.com/voxelfleet/cuberenderer/internal/netio"
	"github.com/voxelfleet/cuberenderer/internal/raster"
	"github.com/voxelfleet/cuberenderer/internal/renderer"
)

// main wires config -> engine -> long-lived actors -> the outer render
// loop -> SIGINT-triggered shutdown, the generalized analogue of the
// teacher's own main.go ("load config, spawn long-lived actors, start an
// outer loop, shut the engine down on termination").
func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to the world/cube/controller configuration document")
	scenePath := flag.String("scene", "", "path to the scene selection document")
	brightness := flag.Float64("brightness", 1.0, "global brightness, 0..1")
	flag.Parse()

	if *configPath == "" || *scenePath == "" {
		fmt.Fprintln(os.Stderr, "cuberenderer: --config and --scene are required")
		return 1
	}
	if *brightness < 0 || *brightness > 1 {
		fmt.Fprintln(os.Stderr, "cuberenderer: --brightness must be in [0,1]")
		return 1
	}

	configData, err := os.ReadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cuberenderer: reading --config: %v\n", err)
		return 1
	}
	doc, err := config.Load(configData)
	if err != nil {
		return reportConfigError(err)
	}

	sceneData, err := os.ReadFile(*scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cuberenderer: reading --scene: %v\n", err)
		return 1
	}
	sceneConfig, err := config.LoadSceneConfig(sceneData)
	if err != nil {
		return reportConfigError(err)
	}

	tunables := config.Default()

	world := raster.New(doc.World[0], doc.World[1], doc.World[2], doc.Orientation)

	socket, err := netio.NewSocket()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cuberenderer: opening ArtNet socket: %v\n", err)
		return 1
	}
	defer socket.Close()

	senderMonitor := artnet.NewSenderMonitor(tunables.SenderCooldown)
	fanOut := artnet.NewFanOut(doc.Cubes, doc.CubeDim, senderMonitor, socket, float32(*brightness))

	engine := actorkit.NewEngine()

	// metaScene is assigned once buildScene constructs a lobby.MetaScene;
	// the callback closure captures the pointer-to-pointer so the Registry
	// (which must exist before the meta-scene can reference it) can still
	// dispatch button edges to a meta-scene that does not exist yet at
	// construction time.
	var metaScene *lobby.MetaScene
	callback := func(playerID string, button int, state controller.ButtonState) {
		if metaScene != nil {
			metaScene.HandleButton(playerID, button, state)
		}
	}

	dipToPlayer := invertRoleMapping(doc.SceneRoleToDIP[sceneConfig.Name])
	registry := controller.NewRegistry(engine, dipToPlayer, callback)

	builtScene, players, _, err := buildScene(sceneConfig, doc, registry, &metaScene)
	if err != nil {
		return reportConfigError(err)
	}

	addresses := make([]controller.Address, 0, len(doc.ControllerAddresses))
	for dip, ep := range doc.ControllerAddresses {
		addresses = append(addresses, controller.Address{IP: ep.IP, Port: ep.Port, ExpectedDIP: dip})
	}
	registry.Start(addresses)
	time.Sleep(50 * time.Millisecond) // let sessions begin dialing before the first LCD refresh pass

	loop := renderer.New(world, fanOut, senderMonitor, registry, builtScene, tunables, players)
	loop.Start()

	var monitorServer *monitorProcess
	if tunables.MonitorAddr != "" {
		monitorServer = startMonitor(tunables.MonitorAddr, senderMonitor, registry, world)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	fmt.Println("cuberenderer: shutting down...")

	loop.Stop()
	builtScene.Cleanup()
	engine.Shutdown(tunables.ShutdownTimeout)
	if monitorServer != nil {
		monitorServer.stop()
	}
	fmt.Println("cuberenderer: shutdown complete")
	return 0
}

func reportConfigError(err error) int {
	var ce *errs.ConfigError
	if errors.As(err, &ce) {
		fmt.Fprintf(os.Stderr, "cuberenderer: configuration error: %v\n", err)
		return 1
	}
	var se *errs.SceneError
	if errors.As(err, &se) {
		fmt.Fprintf(os.Stderr, "cuberenderer: scene error: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "cuberenderer: %v\n", err)
	return 1
}

type monitorProcess struct {
	stop func()
}

func startMonitor(addr string, senderMonitor *artnet.SenderMonitor, registry *controller.Registry, world *raster.Raster) *monitorProcess {
	srv := monitor.NewServer(senderMonitor, registry, world)
	httpServer := &httpServerShim{addr: addr, handler: srv.Mux()}
	httpServer.start()
	return &monitorProcess{stop: httpServer.stop}
}
