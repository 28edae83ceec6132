package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/cpusim/cpu"
	"github.com/ezrec/cpusim/value"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	conf := Default()
	assert.NoError(conf.Validate())
	assert.Equal(value.Space{Max: 8, AddressSize: 2}, conf.Space())
	assert.Equal(16, conf.MemoryLimit())

	machine, err := conf.NewCpu()
	assert.NoError(err)
	assert.Equal(16, machine.MemorySize())
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	conf, err := Load(strings.NewReader("value_max: 16\ncatalog: 4bit\nradix: 16\n"))
	assert.NoError(err)
	assert.Equal(16, conf.ValueMax)
	assert.Equal(2, conf.AddressSize)
	assert.Equal(16, conf.MemorySize)
	assert.Equal(cpu.CATALOG_4BIT, conf.Catalog)
	assert.Equal(16, conf.Radix)
	assert.NoError(conf.Validate())

	conf, err = Load(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(Default(), conf)

	_, err = Load(strings.NewReader("value_max: [1"))
	assert.Error(err)

	_, err = Load(strings.NewReader("valuemax: 16\n"))
	if assert.Error(err) {
		assert.Contains(err.Error(), "valuemax")
	}
}

func TestLoadFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "cpusim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("memory_size: 7\naddress_size: 1\n"), 0o644))

	conf, err := LoadFile(path)
	assert.NoError(err)
	assert.Equal(7, conf.MemorySize)
	assert.Equal(1, conf.AddressSize)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestNormalize(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name        string
		valueMax    int
		addressSize int
		memory      int
		radix       int
		outMemory   int
		outRadix    int
	}){
		{"default", 8, 2, 16, 10, 16, 10},
		{"large", 8, 2, 100, 16, 16, 16},
		{"small", 8, 2, 0, 2, 1, 2},
		{"power", 3, 2, 100, 36, 6, 36},
		{"single", 10, 1, 50, 10, 10, 10},
		{"unit", 1, 2, 5, 10, 1, 10},
		{"radix_low", 8, 2, 16, 1, 16, 10},
		{"radix_high", 8, 2, 16, 37, 16, 10},
	}

	for _, entry := range table {
		conf := Config{
			ValueMax:    entry.valueMax,
			AddressSize: entry.addressSize,
			MemorySize:  entry.memory,
			Catalog:     cpu.CATALOG_3BIT,
			Radix:       entry.radix,
		}
		conf.Normalize()
		assert.Equal(entry.outMemory, conf.MemorySize, entry.name)
		assert.Equal(entry.outRadix, conf.Radix, entry.name)
	}
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		edit func(conf *Config)
		err  error
	}){
		{"value_max", func(conf *Config) { conf.ValueMax = 0 }, value.ErrSpaceMax},
		{"address_size", func(conf *Config) { conf.AddressSize = 3 }, value.ErrSpaceAddress},
		{"radix", func(conf *Config) { conf.Radix = 40 }, ErrRadix},
		{"catalog", func(conf *Config) { conf.Catalog = "9bit" }, cpu.ErrCatalogUnknown("9bit")},
		{"halt", func(conf *Config) { conf.Catalog = cpu.CATALOG_4BIT }, cpu.ErrCatalogHalt},
	}

	for _, entry := range table {
		conf := Default()
		entry.edit(&conf)
		assert.ErrorIs(conf.Validate(), entry.err, entry.name)

		_, err := conf.NewCpu()
		assert.Error(err, entry.name)
	}
}
