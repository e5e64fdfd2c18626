// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command coopsim runs a simulated two-LED board on the coop runtime:
// two blinkers, a button delivered from a goroutine through an Inbox,
// and a race that stops the board when the button wins.
package main

import (
	"context"
	_ "embed"
	"flag"
	"log/slog"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"

	"code.hybscloud.com/coop"
)

//go:embed config.cue
var defaultConfig []byte

type config struct {
	LedA struct {
		Period uint32 `json:"period"`
	} `json:"ledA"`
	LedB struct {
		Period uint32 `json:"period"`
	} `json:"ledB"`
	Button struct {
		PressAfter uint32 `json:"pressAfter"`
	} `json:"button"`
	RunFor uint32 `json:"runFor"`
}

func loadConfig(path string) (config, error) {
	src := defaultConfig
	name := "config.cue"
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return config{}, err
		}
		src, name = content, path
	}
	value := cuecontext.New().CompileBytes(src, cue.Filename(name))
	if err := value.Err(); err != nil {
		return config{}, err
	}
	var cfg config
	if err := value.Decode(&cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// newLogger fans out to the terminal and, when available, the systemd
// journal.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}
	journal, err := slogjournal.NewHandler(&slogjournal.Options{})
	if err == nil {
		handlers = append(handlers, journal)
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// led is a simulated output pin.
type led struct {
	name string
	log  *slog.Logger
}

func (l *led) set(high bool, at uint32) {
	l.log.LogAttrs(context.Background(), slog.LevelInfo, "led",
		slog.String("pin", l.name),
		slog.Bool("high", high),
		slog.Uint64("at", uint64(at)),
	)
}

// blink toggles an LED forever with the given half-period.
func blink(l *led, period uint32) *coop.Task {
	return coop.Proc(
		coop.Forever(
			coop.Do(func(c *coop.Call) { l.set(true, c.Now()) }),
			coop.Delay(period),
			coop.Do(func(c *coop.Call) { l.set(false, c.Now()) }),
			coop.Delay(period),
		),
	).Named("blink-" + l.name)
}

func main() {
	configPath := flag.String("config", "", "CUE configuration file (default: embedded)")
	debug := flag.Bool("debug", false, "trace every task step")
	flag.Parse()

	log := newLogger(*debug)
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	var opts []coop.Option
	if *debug {
		opts = append(opts, coop.WithTrace(log))
	}

	button := coop.NewInbox[int64](4)
	go func() {
		time.Sleep(time.Duration(cfg.Button.PressAfter) * time.Millisecond)
		if err := button.Push(1); err != nil {
			log.Warn("button press dropped", "error", err)
		}
	}()

	ledA := &led{name: "A", log: log}
	ledB := &led{name: "B", log: log}

	press := coop.Proc(
		coop.Recv(button, func(c *coop.Call, v int64) {
			log.Info("button", "value", v, "at", c.Now())
		}),
	).Named("press")

	// LED A blinks until the button wins the race.
	board := coop.Once(coop.Proc(
		coop.Race(press, blink(ledA, cfg.LedA.Period),
			coop.Seq(
				coop.Do(func(c *coop.Call) { ledA.set(false, c.Now()) }),
				coop.Do(func(c *coop.Call) { log.Info("board stopped by button") }),
			),
			nil,
		),
	).Named("board"), opts...)

	// LED B blinks for the configured window, then the site completes.
	window := coop.Once(coop.Proc(
		coop.Timeout(cfg.RunFor, blink(ledB, cfg.LedB.Period),
			coop.Do(func(c *coop.Call) { ledB.set(false, c.Now()) }),
		),
	).Named("window"), opts...)

	coop.Run(board, window)
	log.Info("simulation complete")
}
