// Command touchbridge reads a touch sensor's serial stream and drives the
// host pointer from it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/banshee-data/touchbridge/internal/bridge"
	"github.com/banshee-data/touchbridge/internal/config"
	"github.com/banshee-data/touchbridge/internal/metrics"
	"github.com/banshee-data/touchbridge/internal/monitoring"
	"github.com/banshee-data/touchbridge/internal/pointer"
	"github.com/banshee-data/touchbridge/internal/serialport"
	"github.com/banshee-data/touchbridge/internal/tail"
	"github.com/banshee-data/touchbridge/internal/timeutil"
	"github.com/banshee-data/touchbridge/internal/version"
)

var (
	configPath  = flag.String("config", "", "Path to a JSON config file (flags override it)")
	baud        = flag.Int("baud", config.DefaultBaudRate, "Serial baud rate")
	readTimeout = flag.Duration("read-timeout", config.DefaultReadTimeout, "Serial read timeout per poll")
	idleBackoff = flag.Duration("idle-backoff", 0, "Sleep between empty polls (0 polls again at once)")
	screen      = flag.String("screen", "", "Screen size as WIDTHxHEIGHT (default: read from the framebuffer)")
	sinkName    = flag.String("sink", config.DefaultSink, "Pointer sink: uinput or log")
	listen      = flag.String("listen", "", "Debug HTTP listen address, e.g. localhost:8089 (empty disables)")
	verbose     = flag.Bool("verbose", false, "Trace every decoded frame")
	devMode     = flag.Bool("dev", false, "Replay a synthetic tap instead of opening a serial port")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// devInterval is how often the -dev script repeats.
const devInterval = 2 * time.Second

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <serial-device>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	device := flag.Arg(0)
	if device == "" && !*devMode {
		fmt.Fprintln(os.Stderr, "missing serial port argument")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath, setFlags())
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	monitoring.SetVerbose(cfg.GetVerbose())

	if err := run(cfg, device, *devMode); err != nil {
		log.Fatalf("touchbridge: %v", err)
	}
	log.Printf("Graceful shutdown complete")
}

func run(cfg *config.BridgeConfig, device string, dev bool) error {
	log.Printf("starting %s", version.String())

	geom, err := resolveGeometry(cfg)
	if err != nil {
		return err
	}
	kind, err := pointer.ParseKind(cfg.GetSink())
	if err != nil {
		return err
	}
	sink, sinkCloser, err := pointer.Open(kind, geom)
	if err != nil {
		return fmt.Errorf("failed to open %s pointer sink: %w", kind, err)
	}
	defer sinkCloser.Close()
	log.Printf("pointer sink %s sized %s", kind, geom)

	opts := portOptions(cfg)
	reader, err := openSource(device, dev, opts)
	if err != nil {
		return err
	}
	defer reader.Close()
	if dev {
		log.Printf("dev mode: replaying a synthetic tap every %s", devInterval)
	} else {
		log.Printf("reading %s at %s", device, opts)
	}

	reg := metrics.NewRegistry()
	runner := bridge.NewRunner(reader, sink, geom)
	runner.Metrics = metrics.NewBridgeMetrics(reg)
	runner.Events = tail.Discard
	if wait := idleWait(cfg); wait != nil {
		runner.Wait = wait
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	if addr := cfg.GetListen(); addr != "" {
		events := tail.NewBroadcaster()
		defer events.Close()
		runner.Events = events

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serveDebug(ctx, addr, newDebugMux(events, reg)); err != nil {
				log.Printf("debug server error: %v", err)
			}
			log.Printf("HTTP server routine stopped")
		}()
	}

	// Closing the reader unblocks a read stuck in the driver.
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		reader.Close()
	}()

	err = runner.Run(ctx)
	stop()
	wg.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("bridge stopped: %w", err)
	}
	return nil
}

// setFlags returns the names of flags given explicitly on the command line,
// so only those override the config file.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// loadConfig reads the optional config file and applies explicitly set flags
// on top of it.
func loadConfig(path string, set map[string]bool) (*config.BridgeConfig, error) {
	cfg := config.EmptyBridgeConfig()
	if path != "" {
		var err error
		cfg, err = config.LoadBridgeConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if set["baud"] {
		cfg.SetBaudRate(*baud)
	}
	if set["read-timeout"] {
		cfg.SetReadTimeout(readTimeout.String())
	}
	if set["idle-backoff"] {
		cfg.SetIdleBackoff(idleBackoff.String())
	}
	if set["screen"] {
		g, err := pointer.ParseGeometry(*screen)
		if err != nil {
			return nil, err
		}
		cfg.SetScreen(g.Width, g.Height)
	}
	if set["sink"] {
		cfg.SetSink(*sinkName)
	}
	if set["listen"] {
		cfg.SetListen(*listen)
	}
	if set["verbose"] {
		cfg.SetVerbose(*verbose)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// idleWait returns a back-off wait when one is configured, or nil to keep
// the runner's default.
func idleWait(cfg *config.BridgeConfig) bridge.WaitFunc {
	d := cfg.GetIdleBackoff()
	if d <= 0 {
		return nil
	}
	return bridge.SleepWait(timeutil.RealClock{}, d)
}

func portOptions(cfg *config.BridgeConfig) serialport.PortOptions {
	return serialport.PortOptions{
		BaudRate:    cfg.GetBaudRate(),
		DataBits:    cfg.GetDataBits(),
		StopBits:    cfg.GetStopBits(),
		Parity:      cfg.GetParity(),
		ReadTimeout: cfg.GetReadTimeout(),
	}
}

// resolveGeometry prefers a configured screen size and falls back to the
// framebuffer.
func resolveGeometry(cfg *config.BridgeConfig) (pointer.Geometry, error) {
	if cfg.GetScreenWidth() > 0 {
		g := pointer.Geometry{Width: cfg.GetScreenWidth(), Height: cfg.GetScreenHeight()}
		return g, g.Validate()
	}
	g, err := pointer.DetectGeometry()
	if err != nil {
		return pointer.Geometry{}, fmt.Errorf("%w (set -screen WIDTHxHEIGHT)", err)
	}
	return g, nil
}

// openSource opens the serial device, or in dev mode a scripted port that
// replays devScript through the same open path.
func openSource(device string, dev bool, opts serialport.PortOptions) (*serialport.Reader, error) {
	var factory serialport.PortFactory = serialport.NewRealPortFactory()
	if dev {
		device = "dev"
		factory = serialport.PortOpener(func(string, serialport.PortOptions) (serialport.SerialPorter, error) {
			return serialport.NewScriptedPort(devScript(), devInterval), nil
		})
	}
	return serialport.Open(factory, device, opts)
}

func newDebugMux(events *tail.Broadcaster, reg *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	events.AttachAdminRoutes(mux)
	mux.Handle("/metrics", metrics.Handler(reg))
	return mux
}

// serveDebug runs the debug HTTP server until ctx is done.
func serveDebug(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()
	log.Printf("debug server listening on %s", addr)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}
	return nil
}
