// Package config holds the machine geometry and presentation settings,
// loaded from YAML and overridden from the command line.
package config

import (
	"errors"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/cpusim/cpu"
	"github.com/ezrec/cpusim/translate"
	"github.com/ezrec/cpusim/value"
)

var f = translate.From

var (
	ErrRadix = errors.New(f("radix must be between 2 and 36"))
)

const (
	RADIX_MIN = 2  // Smallest display radix.
	RADIX_MAX = 36 // Largest display radix.
)

// Config is the complete simulator configuration.
type Config struct {
	ValueMax    int           `yaml:"value_max"`    // Exclusive limit of a single digit.
	AddressSize int           `yaml:"address_size"` // Digits per address, 1 or 2.
	MemorySize  int           `yaml:"memory_size"`  // Memory cells.
	Catalog     cpu.CatalogId `yaml:"catalog"`      // Instruction set identifier.
	Radix       int           `yaml:"radix"`        // Display radix.
}

// Default returns the power on configuration.
func Default() Config {
	return Config{
		ValueMax:    8,
		AddressSize: 2,
		MemorySize:  16,
		Catalog:     cpu.CATALOG_3BIT,
		Radix:       10,
	}
}

// Load decodes YAML from r over the defaults. Unknown keys are an error.
func Load(r io.Reader) (conf Config, err error) {
	conf = Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err = dec.Decode(&conf)
	if errors.Is(err, io.EOF) {
		err = nil
	}

	return
}

// LoadFile decodes a YAML file over the defaults.
func LoadFile(path string) (conf Config, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	conf, err = Load(file)
	if err != nil {
		err = errors.Join(errors.New(path), err)
	}

	return
}

// Space returns the numeric geometry.
func (conf Config) Space() value.Space {
	return value.Space{Max: conf.ValueMax, AddressSize: conf.AddressSize}
}

// MemoryLimit is the largest memory size allowed for the geometry,
// the smaller of ValueMax * AddressSize and ValueMax ^ AddressSize.
func (conf Config) MemoryLimit() int {
	return min(conf.ValueMax*conf.AddressSize, conf.Space().Limit())
}

// Normalize clamps the memory size and radix into range.
func (conf *Config) Normalize() {
	limit := max(1, conf.MemoryLimit())
	switch {
	case conf.MemorySize < 1:
		log.Printf("config: memory size %v raised to 1", conf.MemorySize)
		conf.MemorySize = 1
	case conf.MemorySize > limit:
		log.Printf("config: memory size %v clamped to %v", conf.MemorySize, limit)
		conf.MemorySize = limit
	}

	if conf.Radix < RADIX_MIN || conf.Radix > RADIX_MAX {
		log.Printf("config: radix %v replaced by 10", conf.Radix)
		conf.Radix = 10
	}
}

// Validate checks the geometry, the radix and the catalog.
func (conf Config) Validate() (err error) {
	space := conf.Space()
	err = space.Validate()
	if err != nil {
		return
	}

	if conf.Radix < RADIX_MIN || conf.Radix > RADIX_MAX {
		err = ErrRadix
		return
	}

	cat, err := conf.LookupCatalog()
	if err != nil {
		return
	}

	if cat.Halt().Opcode >= space.Max {
		err = errors.Join(cpu.ErrCatalogHalt, cpu.ErrCatalogUnknown(conf.Catalog))
		return
	}

	return
}

// LookupCatalog resolves the configured instruction set.
func (conf Config) LookupCatalog() (cpu.Catalog, error) {
	return cpu.LookupCatalog(conf.Catalog, conf.Space())
}

// NewCpu builds a Cpu for the configuration.
func (conf Config) NewCpu() (machine *cpu.Cpu, err error) {
	err = conf.Validate()
	if err != nil {
		return
	}

	cat, err := conf.LookupCatalog()
	if err != nil {
		return
	}

	machine, err = cpu.NewCpu(conf.Space(), conf.MemorySize, cat)

	return
}
