package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/azbo/typeset"
	"github.com/azbo/typeset/logging"
)

func main() {
	var (
		inputFile  string
		outputFile string
		size       string
		landscape  bool
		title      string
		author     string
		verbose    bool
	)

	flag.StringVar(&inputFile, "input", "", "Input markup file path or http(s) URL")
	flag.StringVar(&outputFile, "output", "", "Output PDF file path")
	flag.StringVar(&size, "size", "A4", "Page size: A3, A4, A5, Letter, Legal")
	flag.BoolVar(&landscape, "landscape", false, "Landscape orientation")
	flag.StringVar(&title, "title", "", "Document title")
	flag.StringVar(&author, "author", "", "Document author")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	if inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: input file is required")
		flag.Usage()
		os.Exit(1)
	}

	fromURL := strings.HasPrefix(inputFile, "http://") || strings.HasPrefix(inputFile, "https://")
	if outputFile == "" {
		if fromURL {
			outputFile = "output.pdf"
			if u, err := url.Parse(inputFile); err == nil {
				if base := path.Base(u.Path); base != "." && base != "/" {
					ext := path.Ext(base)
					outputFile = base[:len(base)-len(ext)] + ".pdf"
				}
			}
		} else {
			ext := filepath.Ext(inputFile)
			outputFile = inputFile[:len(inputFile)-len(ext)] + ".pdf"
		}
	}

	if verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	opts := []typeset.Option{
		typeset.WithTitle(title),
		typeset.WithAuthor(author),
	}
	switch size {
	case "A3":
		opts = append(opts, typeset.WithPageSize(typeset.SizeA3))
	case "A4":
		opts = append(opts, typeset.WithPageSize(typeset.SizeA4))
	case "A5":
		opts = append(opts, typeset.WithPageSize(typeset.SizeA5))
	case "Letter":
		opts = append(opts, typeset.WithPageSize(typeset.SizeLetter))
	case "Legal":
		opts = append(opts, typeset.WithPageSize(typeset.SizeLegal))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown page size %q\n", size)
		os.Exit(1)
	}
	if landscape {
		opts = append(opts, typeset.WithOrientation(typeset.OrientationLandscape))
	}

	converter := typeset.New(opts...)
	convert := converter.ConvertFile
	if fromURL {
		convert = converter.ConvertURL
	}
	if err := convert(inputFile, outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", inputFile, err)
		os.Exit(1)
	}

	for _, w := range converter.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Kind, w.Detail)
	}
	if verbose {
		fmt.Printf("Converted %s to %s\n", inputFile, outputFile)
	}
}
