package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"github.com/smasonuk/gobsp"
)

// Keeps the config field names intact for the cli package under obfuscation.
var _ = reflect.TypeOf(config{})

type config struct {
	Scene       string `cli:""        env:"BSPVIEW_SCENE"        help:"YAML scene file. The built-in forests are used when empty."`
	MaxObjects  int    `cli:""        env:"BSPVIEW_MAX_OBJECTS"  help:"Maximum number of objects in a leaf cell."`
	FOV         int    `cli:""        env:"BSPVIEW_FOV"          help:"Camera field of view in degrees."`
	Palette     int    `cli:",hidden" env:"BSPVIEW_PALETTE"      help:"Number of colours used to tell cells apart."`
	Headless    bool   `cli:""        env:"BSPVIEW_HEADLESS"     help:"Split and query without opening a window."`
	Splits      int    `cli:""        env:"BSPVIEW_SPLITS"       help:"Headless: number of split-once commands, -1 to split fully."`
	Dump        bool   `cli:""        env:"BSPVIEW_DUMP"         help:"Headless: print the tree as JSON."`
	Width       int    `cli:",hidden" env:"BSPVIEW_WIDTH"        help:"Window width."`
	Height      int    `cli:",hidden" env:"BSPVIEW_HEIGHT"       help:"Window height."`
	MetricsAddr string `cli:""        env:"BSPVIEW_METRICS_ADDR" help:"Serve Prometheus metrics on this address when set."`
	LogLevel    string `cli:""        env:"BSPVIEW_LOG_LEVEL"    help:"Log level (debug|info|warning|error)."`
	LogIndent   bool   `cli:""        env:"BSPVIEW_LOG_INDENT"   help:"Indent logs."`
	Help        bool   `cli:""        env:"-"                    help:"Show help."`
}

func main() {
	conf := config{
		MaxObjects: gobsp.DefaultMaxObjectsPerLeaf,
		FOV:        int(gobsp.DefaultFOV),
		Palette:    len(palette),
		Splits:     1,
		Width:      screenWidth,
		Height:     screenHeight,
		LogLevel:   logs.InfoLevel.String(),
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Partitions a scene into BSP cells and shows the cells a camera can see.").
		Options(&conf)
	cli.Load()

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	world, err := newWorld(conf)
	if err != nil {
		logs.Fatal(err)
	}

	if conf.MetricsAddr != "" {
		go serveMetrics(ctx, conf.MetricsAddr)
	}

	if conf.Headless {
		if err := runHeadless(world, conf); err != nil {
			logs.Fatal(err)
		}
		return
	}

	ebiten.SetWindowSize(conf.Width, conf.Height)
	ebiten.SetWindowTitle("bspview")
	if err := ebiten.RunGame(NewGame(world, conf)); err != nil {
		logs.Fatal(err)
	}
}

func newWorld(conf config) (*gobsp.World, error) {
	scene := gobsp.DefaultScene()
	if conf.Scene != "" {
		s, err := gobsp.LoadSceneFile(conf.Scene)
		if err != nil {
			return nil, err
		}
		scene = s
	}

	objs, err := scene.Objects()
	if err != nil {
		return nil, err
	}

	world := gobsp.NewWorld(conf.MaxObjects)
	world.PaletteSize = conf.Palette
	world.AddAll(objs)

	logs.WithTag("objects", len(objs)).
		WithTag("trees", objs.CountKind(gobsp.KindTree)).
		WithTag("segments", objs.CountKind(gobsp.KindSegment)).
		Info("scene loaded")
	return world, nil
}

var (
	cameraEye    = gobsp.NewPoint3(0, 1, 25)
	cameraTarget = gobsp.NewPoint3(0, 4, 0)
)

func newCamera(conf config) *gobsp.Camera {
	cam, err := gobsp.NewCameraLookAt(cameraEye, cameraTarget)
	if err != nil {
		logs.Fatal(errors.New("placing the camera failed").
			WithTag("eye", cameraEye).
			WithTag("target", cameraTarget).
			Wrap(err))
	}
	cam.FOV = float64(conf.FOV)
	return cam
}

func runHeadless(world *gobsp.World, conf config) error {
	if conf.Splits < 0 {
		if err := world.SplitFully(); err != nil {
			return err
		}
	}
	for i := 0; i < conf.Splits; i++ {
		if err := world.SplitOnce(); err != nil {
			return err
		}
	}

	cam := newCamera(conf)
	cells, err := world.Visible(cam)
	if err != nil {
		return err
	}
	logs.WithTag("cells", len(cells)).
		WithTag("objects", len(gobsp.VisibleObjects(cells))).
		WithTag("nodes", world.Root().Count()).
		Info("visible from camera")

	if !conf.Dump {
		return nil
	}
	data, err := gobsp.Dump(world.Root())
	if err != nil {
		return errors.New("dumping tree failed").Wrap(err)
	}
	fmt.Println(string(data))
	return nil
}

func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			logs.Warn(errors.New("shutting down the metrics server failed").
				WithTag("addr", addr).
				Wrap(err))
		}
	}()

	logs.WithTag("addr", addr).Info("serving metrics")
	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logs.Warn(errors.New("metrics server stopped").
			WithTag("addr", addr).
			Wrap(err))
	}
}
