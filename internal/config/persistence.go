package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Sentinel words bracketing a persisted config block, matching the
// firmware's EEPROM_HEAD_SENTINEL / EEPROM_TAIL_SENTINEL constants. A
// block whose sentinels don't match is treated as uninitialized or
// corrupt flash rather than trusted.
const (
	headSentinel uint32 = 0xFEEDFACE
	tailSentinel uint32 = 0xE0DBC0DE
)

// block is the on-disk representation: the sentinels plus the config
// payload, YAML-encoded as the host-side stand-in for a raw flash image.
type block struct {
	Head   uint32 `yaml:"head_sentinel"`
	Config Config `yaml:"config"`
	Tail   uint32 `yaml:"tail_sentinel"`
}

// Persistence reads and writes a Config to a backing file, validating the
// sentinel words on load exactly as the firmware validates its EEPROM
// block before trusting it.
type Persistence struct {
	path string
}

// NewPersistence returns a Persistence backed by the given file path.
func NewPersistence(path string) *Persistence {
	return &Persistence{path: path}
}

// Load reads and validates the persisted config. A missing file, a read
// failure, or a YAML-decode failure is reported as ErrEepromIOError; a
// sentinel mismatch is reported as ErrConfigCorrupt. On either error the
// caller should fall back to Default().
func (p *Persistence) Load() (Config, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return Config{}, ErrEepromIOError
	}
	var b block
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Config{}, ErrEepromIOError
	}
	if b.Head != headSentinel || b.Tail != tailSentinel {
		return Config{}, ErrConfigCorrupt
	}
	b.Config.Clamp()
	return b.Config, nil
}

// Save validates and writes cfg to the backing file, stamping both
// sentinels so a subsequent Load can trust the block.
func (p *Persistence) Save(cfg Config) error {
	cfg.Clamp()
	b := block{Head: headSentinel, Config: cfg, Tail: tailSentinel}
	data, err := yaml.Marshal(&b)
	if err != nil {
		return ErrEepromIOError
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return ErrEepromIOError
	}
	return nil
}
