// Command wm is the window-manager daemon: it wires the container tree,
// status bar, command interpreter, event dispatcher, renderer, IPC server,
// and persistence store together and drives them from the single
// cooperative event loop internal/loop implements.
//
// This build links internal/backend/noop as its DisplayBackend, since no
// X11 protocol binding was available to wire in; see that package's doc
// comment. A production deployment replaces the three lines constructing
// `be`/`metrics`/`xsrc` below with a real DisplayBackend/TextMetrics/
// loop.XEventSource implementation and otherwise reuses this file
// unchanged.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bnema/wm/internal/backend/noop"
	"github.com/bnema/wm/internal/bar"
	"github.com/bnema/wm/internal/command"
	"github.com/bnema/wm/internal/config"
	"github.com/bnema/wm/internal/event"
	"github.com/bnema/wm/internal/ipc"
	"github.com/bnema/wm/internal/logging"
	"github.com/bnema/wm/internal/loop"
	"github.com/bnema/wm/internal/persistence"
	"github.com/bnema/wm/internal/render"
	"github.com/bnema/wm/internal/status"
	"github.com/bnema/wm/internal/tree"
)

func main() {
	var configDir, socketPath string
	flag.StringVar(&configDir, "config-dir", "", "directory to search for config.toml")
	flag.StringVar(&socketPath, "socket", "", "IPC socket path (overrides config and the default)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrapLog := logging.New(logging.INFO, logging.TextFormatter{})

	cfgMgr, err := config.NewManager(configDir, bootstrapLog)
	if err != nil {
		bootstrapLog.Fatalf("build config manager: %v", err)
		os.Exit(1)
	}
	if err := cfgMgr.Load(); err != nil {
		bootstrapLog.Fatalf("load config: %v", err)
		os.Exit(1)
	}
	cfg := cfgMgr.Current()

	log := buildLogger(cfg.Logging)
	log.Infof("starting wm")

	if socketPath == "" {
		socketPath = cfg.IPC.SocketPath
	}
	if socketPath == "" {
		socketPath = defaultSocketPath()
	}
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o700); err != nil {
		log.Fatalf("create socket directory: %v", err)
		os.Exit(1)
	}

	store, err := persistence.Open(cfg.Database.Path, log)
	if err != nil {
		log.Fatalf("open persistence store: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	tr := tree.New(log)
	if snap, err := persistence.ReadSnapshot(cfg.Persistent.SnapshotPath); err == nil {
		tr = snap
		log.Infof("restored layout snapshot from %s", cfg.Persistent.SnapshotPath)
	}

	be := noop.New()
	metrics := noop.Metrics{}

	barCore, err := bar.New(cfg.Bar, be, metrics, log)
	if err != nil {
		log.Fatalf("build bar core: %v", err)
		os.Exit(1)
	}

	l := loop.New(256, log)

	var ipcSrv *ipc.Server
	hooks := command.Hooks{
		Reload: func() error {
			log.Infof("reload: re-reading config")
			return cfgMgr.Load()
		},
		Restart: func() error {
			log.Infof("restart: snapshotting layout and re-executing")
			if err := persistence.WriteSnapshot(tr, cfg.Persistent.SnapshotPath); err != nil {
				return err
			}
			exe, err := os.Executable()
			if err != nil {
				return err
			}
			return syscall.Exec(exe, os.Args, os.Environ())
		},
		Exit: func() {
			log.Infof("exit: stopping event loop")
			stop()
		},
		SetBarOption: func(barID, key, value string) error {
			return barCore.SetBarOption(barID, key, value)
		},
		Notify: func(eventType, change string, payload any) {
			if ipcSrv != nil {
				ipcSrv.Notify(eventType, change, payload)
			}
		},
	}
	interp := command.New(tr, be, log, hooks)
	renderer := render.New(be, metrics, interp, log)

	var statusCtrl event.StatusController
	var statusSrc *status.Source
	if cfg.Bar.StatusCommand != "" {
		statusSrc, err = status.NewSource(ctx, cfg.Bar.StatusCommand, log)
		if err != nil {
			log.Warnf("start status source %q: %v", cfg.Bar.StatusCommand, err)
			statusSrc = nil
		} else {
			statusCtrl = statusSrc
			defer statusSrc.Close()
		}
	}

	dispatcher := event.New(tr, be, statusCtrl, barCore, log)

	ipcSrv = &ipc.Server{
		SocketPath: socketPath,
		Parse: func(raw string) ([]command.Command, error) {
			return parseBatch(raw, resolveOutputFunc(tr))
		},
		Execute:      loop.SyncCommandExecutor(l, interp.ExecuteBatch),
		Tree: func() (data []byte, err error) {
			if perr := l.PostSync(ctx, func(context.Context) { data, err = tr.Serialize() }); perr != nil {
				return nil, perr
			}
			return data, err
		},
		Workspaces: func() (data []byte, err error) {
			snapshot := workspacesSnapshot(tr)
			if perr := l.PostSync(ctx, func(context.Context) { data, err = snapshot() }); perr != nil {
				return nil, perr
			}
			return data, err
		},
		BarConfig:    func() ([]byte, error) { return json.Marshal(cfg.Bar) },
		ConfigSchema: config.SchemaJSON,
		Log:          log,
	}
	dispatcher.SetNotifier(ipcSrv)
	defer ipcSrv.Close()

	afterBatch := func(ctx context.Context) {
		rendered := interp.ConsumeRender() || dispatcher.ConsumeRender()
		if !rendered {
			return
		}
		if err := renderer.Render(ctx, tr); err != nil {
			log.Warnf("render: %v", err)
		}
	}

	xsrc := noop.EventSource{}

	pumps := []loop.Pump{
		ipcSrv.Serve,
		func(ctx context.Context) error {
			return loop.PumpXEvents(ctx, l, xsrc, log, func(ctx context.Context, ev event.Event) {
				_ = dispatcher.Dispatch(ctx, ev)
			})
		},
		func(ctx context.Context) error {
			return loop.WatchChildren(ctx, l, log, func(ctx context.Context, ce loop.ChildExit) {
				log.Debugf("child %d exited (code=%d signaled=%v)", ce.PID, ce.ExitCode, ce.Signaled)
			})
		},
	}
	if statusSrc != nil {
		pumps = append(pumps, func(ctx context.Context) error {
			return loop.PumpStatus(ctx, l, statusSrc, log, func(ctx context.Context, u status.Update) {
				barCore.SetStatusBlocks(u.Blocks)
				if err := renderer.Render(ctx, tr); err != nil {
					log.Warnf("render after status update: %v", err)
				}
			}, func(ctx context.Context, err error) {
				log.Warnf("status source: %v", err)
			})
		})
	}

	err = loop.RunAll(ctx, l, log, afterBatch, pumps...)
	if err != nil && ctx.Err() == nil {
		log.Errorf("event loop stopped: %v", err)
	}
	log.Infof("wm exiting")
}

func buildLogger(cfg config.LoggingConfig) *logging.Logger {
	formatter := logging.NewFormatter(cfg.Format)
	outputs := []io.Writer{os.Stderr}
	if cfg.EnableFileLog && cfg.Dir != "" {
		rot, err := logging.NewRotator(logging.RotatorConfig{
			Dir:        cfg.Dir,
			BaseName:   "wm.log",
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
		if err == nil {
			outputs = append(outputs, rot)
		}
	}
	return logging.New(logging.ParseLevel(cfg.Level), formatter, outputs...)
}

func defaultSocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "wm", "wm.sock")
}

func resolveOutputFunc(tr *tree.Tree) outputResolver {
	return func(name string) (*tree.Container, *tree.Container) {
		for _, out := range tr.Outputs() {
			if out.OutputName == name {
				var visible *tree.Container
				if content := firstChildOfRole(out, tree.RoleContent); content != nil {
					if order := content.FocusOrder(); len(order) > 0 {
						visible = order[0]
					}
				}
				return out, visible
			}
		}
		return nil, nil
	}
}
