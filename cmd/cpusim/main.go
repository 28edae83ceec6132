package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/cpusim/config"
	"github.com/ezrec/cpusim/cpu"
	"github.com/ezrec/cpusim/display"
	"github.com/ezrec/cpusim/emulator"
	cio "github.com/ezrec/cpusim/io"
	"github.com/ezrec/cpusim/translate"
)

// Extensions of plain load images. Anything else is assembled.
var imageExt = []string{".img", ".load"}

func main() {
	var confFile string
	var radix int
	var addressSize int
	var operations string
	var valueMax int
	var memorySize int
	var image bool
	var input string
	var output string
	var count int
	var interactive bool
	var seed uint64
	var verbose bool
	var lang string

	flag.StringVar(&confFile, "config", "", "YAML configuration file")
	flag.IntVar(&radix, "r", 0, "Display radix")
	flag.IntVar(&radix, "radix", 0, "Display radix")
	flag.IntVar(&addressSize, "a", 0, "Address size, in values (1 or 2)")
	flag.IntVar(&addressSize, "address", 0, "Address size, in values (1 or 2)")
	flag.StringVar(&operations, "o", "", "Operation catalog (3bit, 4bit)")
	flag.StringVar(&operations, "operations", "", "Operation catalog (3bit, 4bit)")
	flag.IntVar(&valueMax, "s", 0, "Values per register digit")
	flag.IntVar(&valueMax, "size", 0, "Values per register digit")
	flag.IntVar(&memorySize, "mc", 0, "Central memory size")
	flag.BoolVar(&image, "l", false, "Program is a load image, not source")
	flag.StringVar(&input, "i", "", "Tape input")
	flag.StringVar(&output, "out", "-", "Tape output")
	flag.IntVar(&count, "n", 0, "Maximum steps to run (0 is unlimited)")
	flag.BoolVar(&interactive, "t", false, "Interactive mode, one step per key press")
	flag.Uint64Var(&seed, "seed", 0, "Sample undefined values with this seed")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Message language, such as en-US")

	flag.Parse()

	if len(lang) != 0 {
		translate.SetLanguage(lang)
	}

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: %v [options] program", os.Args[0], os.Args[0])
	}
	program := flag.Arg(0)

	conf := config.Default()
	if len(confFile) != 0 {
		var err error
		conf, err = config.LoadFile(confFile)
		if err != nil {
			log.Fatalf("%v: %v", confFile, err)
		}
	}

	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "r", "radix":
			conf.Radix = radix
		case "a", "address":
			conf.AddressSize = addressSize
		case "o", "operations":
			conf.Catalog = cpu.CatalogId(operations)
		case "s", "size":
			conf.ValueMax = valueMax
		case "mc":
			conf.MemorySize = memorySize
		}
	})

	conf.Normalize()
	err := conf.Validate()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	emu, err := emulator.NewEmulator(conf)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.Verbose = verbose

	if len(input) != 0 {
		var inf io.Reader
		if input == "-" {
			if interactive {
				log.Fatalf("%v: tape input can not be stdin in interactive mode", os.Args[0])
			}
			inf = os.Stdin
		} else {
			file, err := os.Open(input)
			if err != nil {
				log.Fatalf("%v: %v", input, err)
			}
			defer file.Close()
			inf = file
		}
		emu.Input = &cio.Tape{Space: conf.Space(), Input: inf}
	}

	var ouf io.Writer = os.Stdout
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer file.Close()
		ouf = file
	}

	inf, err := os.Open(program)
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}
	defer inf.Close()

	if image || isImage(program) {
		err = emu.LoadImage(inf)
	} else {
		err = emu.Assemble(inf)
	}
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	show := &display.Display{Radix: conf.Radix}
	if seed != 0 {
		show.Sampler = display.NewSampler(conf.Space(), seed)
	}

	if interactive {
		err = runInteractive(emu, show, ouf, count)
	} else {
		emu.Output = &cio.Tape{Space: conf.Space(), Radix: conf.Radix, Output: ouf}
		_, err = emu.Run(context.Background(), count)
		if err == nil && verbose {
			emu.View(func(machine *cpu.Cpu) {
				err = show.Render(os.Stderr, machine)
			})
		}
	}
	if err != nil {
		log.Printf("%v: %v", program, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func isImage(path string) bool {
	return slices.Contains(imageExt, strings.ToLower(filepath.Ext(path)))
}
