// Command flif encodes and decodes lossless images from the command
// line.
//
// Usage:
//
//	flif enc [options] <input.png> <output.flif>
//	flif dec [options] <input.flif> <output.png>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jsneyers/go-flif"
	"github.com/jsneyers/go-flif/internal/pnmio"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "enc":
		err = runEnc(os.Args[2:])
	case "dec":
		err = runDec(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "flif: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "flif: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  flif enc [options] <input.png> <output.flif>   Encode PNG to FLIF
  flif dec [options] <input.flif> <output.png>   Decode FLIF to PNG

Run "flif <command> -h" for command-specific options.
`)
}

func runEnc(args []string) error {
	fs := flag.NewFlagSet("enc", flag.ContinueOnError)
	scanline := fs.Bool("scanline", false, "code in scanline order instead of the default zoom (progressive) order")
	repeats := fs.Int("learn-repeats", flif.DefaultTreeLearnRepeats, "context-tree learning passes before freezing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("enc: need input and output paths\nUsage: flif enc [options] <input.png> <output.flif>")
	}
	inputPath, outputPath := fs.Arg(0), fs.Arg(1)

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}
	img, ranges, err := pnmio.Decode(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}

	mode := flif.ModeAuto
	if *scanline {
		mode = flif.ModeScanline
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}
	err = flif.Encode(out, img, ranges, flif.Options{Mode: mode, TreeLearnRepeats: *repeats})
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("enc: %w", err)
	}

	fi, _ := os.Stat(outputPath)
	fmt.Fprintf(os.Stderr, "Encoded %s -> %s (%d bytes)\n", inputPath, outputPath, fi.Size())
	return nil
}

func runDec(args []string) error {
	fs := flag.NewFlagSet("dec", flag.ContinueOnError)
	lastI := fs.Int("lasti", -1, "stop after this many zoom-mode coding steps and interpolate the rest (-1 decodes fully)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("dec: need input and output paths\nUsage: flif dec [options] <input.flif> <output.png>")
	}
	inputPath, outputPath := fs.Arg(0), fs.Arg(1)

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("dec: %w", err)
	}
	defer in.Close()

	opts := flif.DecodeOptions{}
	if *lastI >= 0 {
		opts = flif.DecodeOptions{Truncate: true, LastI: *lastI}
	}

	result, err := flif.Decode(in, opts)
	if result == nil && err != nil {
		return fmt.Errorf("dec: %w", err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "flif: dec: %v (continuing with decoded image)\n", err)
	}
	if result.Truncated {
		fmt.Fprintf(os.Stderr, "flif: dec: stream truncated, remaining pixels interpolated\n")
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("dec: %w", err)
	}
	encErr := pnmio.Encode(out, result.Image)
	if cerr := out.Close(); encErr == nil {
		encErr = cerr
	}
	if encErr != nil {
		os.Remove(outputPath)
		return fmt.Errorf("dec: %w", encErr)
	}

	fmt.Fprintf(os.Stderr, "Decoded %s -> %s\n", inputPath, outputPath)
	return nil
}
