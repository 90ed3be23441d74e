// Command sigma6play is a demo driver: it opens a live MIDI input port,
// feeds it through the engine, and plays the rendered mono signal
// (duplicated to stereo) through the host's audio output.
package main

import (
	"os"
	"strings"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	sigma6synth "github.com/mjbauer/sigma6synth"
	"github.com/mjbauer/sigma6synth/internal/audio"
	"github.com/mjbauer/sigma6synth/internal/config"
	engmidi "github.com/mjbauer/sigma6synth/internal/midi"
	"github.com/mjbauer/sigma6synth/internal/patch"
)

func main() {
	sampleRate := pflag.Int("sample-rate", 32000, "audio sample rate (32000 or 40000 Hz)")
	midiPort := pflag.String("midi-port", "", "MIDI input port name substring (empty = first available)")
	configPath := pflag.String("config", "", "path to a persisted config file (host stand-in for EEPROM)")
	presetIdx := pflag.Int("preset", -1, "preset index to load at startup (overrides config.SelectedPreset)")
	pflag.Parse()

	logger := charmlog.New(os.Stderr)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.NewPersistence(*configPath).Load()
		switch err {
		case nil:
			cfg = loaded
		case config.ErrConfigCorrupt:
			logger.Warn("config corrupt, using defaults", "path", *configPath)
		case config.ErrEepromIOError:
			logger.Warn("config unreadable, using defaults", "path", *configPath, "err", err)
		}
	}
	if *presetIdx >= 0 {
		cfg.SelectedPreset = *presetIdx
	}

	p := patch.Preset(cfg.SelectedPreset)

	engine := sigma6synth.NewEngine(*sampleRate)
	engine.Prepare(cfg, p)

	var mu sync.Mutex

	in, err := openInPort(*midiPort)
	if err != nil {
		logger.Fatal("no MIDI input port available", "err", err)
	}
	parser := engmidi.NewParser(cfg.ExpressionCCNum)

	stop, err := midi.ListenTo(in, func(msg midi.Message, _ int32) {
		mu.Lock()
		defer mu.Unlock()
		ev, ok, err := parser.Feed([]byte(msg))
		if err != nil {
			logger.Error("malformed MIDI message dropped", "err", err)
			return
		}
		if !ok {
			return
		}
		applyEvent(engine, ev, &cfg)
	})
	if err != nil {
		logger.Fatal("failed to listen on MIDI port", "err", err)
	}
	defer stop()

	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			mu.Lock()
			engine.ProcessControlTick()
			mu.Unlock()
		}
	}()

	// RenderSample reads only the atomic words the control context
	// publishes, so the audio context never takes mu -- it must not block.
	player, err := audio.NewQPlayer(*sampleRate, engine)
	if err != nil {
		logger.Fatal("failed to open audio output", "err", err)
	}
	player.Play()

	logger.Info("sigma6play running", "sampleRate", *sampleRate, "preset", p.Name)
	select {}
}

func applyEvent(e *sigma6synth.Engine, ev engmidi.Event, cfg *config.Config) {
	switch ev.Kind {
	case engmidi.EventNoteOn:
		e.NoteOn(ev.Note, ev.Velocity)
	case engmidi.EventNoteOff:
		e.NoteOff(ev.Note)
	case engmidi.EventProgramChange:
		e.LoadPreset(ev.Program)
		cfg.SelectedPreset = ev.Program
	case engmidi.EventPitchBend:
		e.PitchBend(ev.PitchBend)
	case engmidi.EventModulation:
		e.Modulation(ev.Value14)
	case engmidi.EventExpression:
		e.Expression(ev.Value14)
	case engmidi.EventAllSoundOff:
		e.AllSoundOff()
	case engmidi.EventSysExVendor:
		// vendor-reserved; no action defined at this layer.
	}
}

func openInPort(nameSubstr string) (drivers.In, error) {
	ins := midi.InPorts()
	if len(ins) == 0 {
		return nil, os.ErrNotExist
	}
	if nameSubstr == "" {
		return ins[0], nil
	}
	for _, in := range ins {
		if strings.Contains(in.String(), nameSubstr) {
			return in, nil
		}
	}
	return ins[0], nil
}
