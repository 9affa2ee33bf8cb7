package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nvr-ai/ocr-prep/config"
	"github.com/nvr-ai/ocr-prep/faults"
	"github.com/nvr-ai/ocr-prep/processor"
	"github.com/nvr-ai/ocr-prep/util"
)

const (
	// DefaultEnvFile is the .env file loaded before the environment is read.
	DefaultEnvFile = ".env"
)

func main() {
	var (
		inputPath  string
		configPath string
		envPath    string
		maxWidth   int
		maxHeight  int
		quality    int
		debug      bool
	)
	flag.StringVar(&inputPath, "input", "", "Path to an image file or a directory of images")
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flag.StringVar(&envPath, "env", DefaultEnvFile, "Path to a .env file")
	flag.IntVar(&maxWidth, "max-width", 0, "Bounding box width (overrides config)")
	flag.IntVar(&maxHeight, "max-height", 0, "Bounding box height (overrides config)")
	flag.IntVar(&quality, "quality", -1, "JPEG quality 0-100 (overrides config)")
	flag.BoolVar(&debug, "debug", false, "Enable debug output")
	flag.Parse()

	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: ocr-prep -input <file|dir> [-config file.yaml] [-max-width N] [-max-height N] [-quality Q]")
		os.Exit(2)
	}

	faults.Install(faults.StderrReporter)

	if err := config.LoadDotEnv(envPath); err != nil {
		log.Fatalf("failed to load %s: %v", envPath, err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if maxWidth > 0 {
		cfg.MaxWidth = maxWidth
	}
	if maxHeight > 0 {
		cfg.MaxHeight = maxHeight
	}
	if quality >= 0 {
		cfg.Quality = quality
	}
	if debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	files, err := util.LoadPath(inputPath)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatalf("no images found in %s", inputPath)
	}

	var out []string
	faults.Guard(func() {
		p := processor.New(&cfg, nil)
		for _, f := range files {
			if err := p.AddBase64(base64.StdEncoding.EncodeToString(f.Data)); err != nil {
				log.Fatalf("%s: %v", f.Path, err)
			}
		}

		out, err = p.Optimize()
		if err != nil {
			log.Fatal(err)
		}

		for i, size := range p.Sizes() {
			fmt.Fprintf(os.Stderr, "%s: %s (%d bytes)\n", files[i].Path, size, len(out[i]))
		}
	})

	for _, uri := range out {
		fmt.Println(uri)
	}
}
