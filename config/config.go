package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"padseq/osc"
	"padseq/sequencer"
)

// Transport selects how the controller and receivers are reached.
type Transport string

const (
	TransportOSC  Transport = "osc"
	TransportMIDI Transport = "midi"
)

// Clock protocols for OSC output.
const (
	ClockO2M     = osc.ClockO2M     // "/*/clock", no arguments
	ClockOSCSync = osc.ClockOSCSync // "/sync/pulse" with count and tempo
)

// OSCConfig addresses the OSC bridge. Input arrives on Listen; lights,
// sampler triggers and clock go to Target unless SamplerTarget overrides
// the sampler.
type OSCConfig struct {
	Listen        string `yaml:"listen"`
	Target        string `yaml:"target"`
	SamplerTarget string `yaml:"sampler_target,omitempty"`
	SamplerPrefix string `yaml:"sampler_prefix"`
	ClockProtocol string `yaml:"clock_protocol"`
}

// MIDIConfig names the ports used by the MIDI transport. Port names match
// by case-insensitive substring.
type MIDIConfig struct {
	ControllerIn  string `yaml:"controller_in"`
	ControllerOut string `yaml:"controller_out"`
	SamplerOut    string `yaml:"sampler_out"`
	ClockOut      string `yaml:"clock_out,omitempty"`
	Channel       int    `yaml:"channel"`       // sampler channel, 1-16
	LightChannel  int    `yaml:"light_channel"` // controller channel, 1-16
	Kit           string `yaml:"kit"`
}

// LightsConfig holds the CCs of the controller's indicator buttons.
type LightsConfig struct {
	Select int `yaml:"select"`
	Beat   int `yaml:"beat"`
}

// PatternConfig seeds a Euclidean pattern for a voice.
type PatternConfig struct {
	Voice  int `yaml:"voice"`
	Onsets int `yaml:"onsets"`
	Pulses int `yaml:"pulses"`
	Rotate int `yaml:"rotate"`
}

// StepsConfig seeds a step sequence for a voice.
type StepsConfig struct {
	Voice  int   `yaml:"voice"`
	Length int   `yaml:"length,omitempty"`
	Steps  []int `yaml:"steps"`
}

// SequencerConfig is the initial Context.
type SequencerConfig struct {
	BPM      int             `yaml:"bpm"`
	Swing    int             `yaml:"swing"`
	Mode     string          `yaml:"mode"`
	Voice    int             `yaml:"voice"`
	Patterns []PatternConfig `yaml:"patterns,omitempty"`
	Steps    []StepsConfig   `yaml:"steps,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type MonitorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Palette string `yaml:"palette,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	Transport  Transport            `yaml:"transport"`
	Controller string               `yaml:"controller"`
	OSC        OSCConfig            `yaml:"osc"`
	MIDI       MIDIConfig           `yaml:"midi"`
	Controls   sequencer.ControlMap `yaml:"controls"`
	Lights     LightsConfig         `yaml:"lights"`
	Sequencer  SequencerConfig      `yaml:"sequencer"`
	Log        LogConfig            `yaml:"log"`
	Monitor    MonitorConfig        `yaml:"monitor"`
}

// DefaultConfig drives a PreSonus ATOM through an OSC to MIDI bridge.
func DefaultConfig() *Config {
	return &Config{
		Transport:  TransportOSC,
		Controller: "atom",
		OSC: OSCConfig{
			Listen:        "0.0.0.0:49161",
			Target:        "127.0.0.1:57200",
			SamplerPrefix: "/sampler",
			ClockProtocol: ClockO2M,
		},
		MIDI: MIDIConfig{
			ControllerIn:  "ATOM",
			ControllerOut: "ATOM",
			SamplerOut:    "",
			Channel:       10,
			LightChannel:  1,
			Kit:           "gm",
		},
		Controls: sequencer.DefaultControlMap(),
		Lights: LightsConfig{
			Select: 103,
			Beat:   109,
		},
		Sequencer: SequencerConfig{
			BPM:   sequencer.DefaultBPM,
			Mode:  sequencer.Perform.String(),
			Voice: 1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "padseq"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFile reads path over the defaults. A missing file yields defaults;
// fields absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the sequencer cannot clamp into range itself.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportOSC, TransportMIDI:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	switch c.OSC.ClockProtocol {
	case ClockO2M, ClockOSCSync:
	default:
		return fmt.Errorf("unknown clock protocol %q", c.OSC.ClockProtocol)
	}
	if _, err := sequencer.ParseMode(c.Sequencer.Mode); err != nil {
		return err
	}
	if c.MIDI.Channel < 1 || c.MIDI.Channel > 16 {
		return fmt.Errorf("midi channel %d out of range 1-16", c.MIDI.Channel)
	}
	if c.MIDI.LightChannel < 1 || c.MIDI.LightChannel > 16 {
		return fmt.Errorf("midi light channel %d out of range 1-16", c.MIDI.LightChannel)
	}
	for _, p := range c.Sequencer.Patterns {
		if p.Voice < 1 || p.Voice > sequencer.Voices {
			return fmt.Errorf("pattern voice %d out of range 1-%d", p.Voice, sequencer.Voices)
		}
	}
	for _, s := range c.Sequencer.Steps {
		if s.Voice < 1 || s.Voice > sequencer.Voices {
			return fmt.Errorf("steps voice %d out of range 1-%d", s.Voice, sequencer.Voices)
		}
	}
	return nil
}

// InitialContext builds the starting sequencer state.
func (c *Config) InitialContext() (sequencer.Context, error) {
	ctx := sequencer.NewContext().
		WithBPM(c.Sequencer.BPM).
		WithSwing(c.Sequencer.Swing).
		WithVoice(c.Sequencer.Voice)

	mode, err := sequencer.ParseMode(c.Sequencer.Mode)
	if err != nil {
		return ctx, err
	}
	ctx = ctx.WithMode(mode)

	for _, p := range c.Sequencer.Patterns {
		ctx.Euclid = ctx.Euclid.WithPattern(p.Voice, sequencer.NewPattern(p.Onsets, p.Pulses, p.Rotate))
	}
	for _, s := range c.Sequencer.Steps {
		ctx.Grid = ctx.Grid.Update(s.Voice, func(seq sequencer.Sequence) sequencer.Sequence {
			if s.Length != 0 {
				seq = seq.SetLength(s.Length)
			}
			for _, step := range s.Steps {
				seq = seq.AddTrigger(step, sequencer.Trigger{Note: seq.Root()})
			}
			return seq
		})
	}
	return ctx, nil
}
