// Command upngdump decodes one or more PNG files and prints their
// metadata (and, with -pam, a raw PAM pixel dump per file).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/nanopng/upng"
)

var (
	glob     = flag.String("glob", "", "recursive glob pattern selecting input files (e.g. \"testdata/**/*.png\")")
	pam      = flag.Bool("pam", false, "write a .pam dump of each decoded image next to the input file")
	parallel = flag.Int("j", 4, "maximum number of files to decode concurrently")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file ...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Decodes PNG files and reports dimensions, color format, and decoded size.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	files := flag.Args()
	if *glob != "" {
		matches, err := doublestar.FilepathGlob(*glob)
		if err != nil {
			fmt.Fprintf(os.Stderr, "upngdump: bad glob %q: %v\n", *glob, err)
			os.Exit(1)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(files); err != nil {
		fmt.Fprintln(os.Stderr, "upngdump:", err)
		os.Exit(1)
	}
}

// run decodes every file in files, up to *parallel at a time, matching
// spec §5's guarantee that distinct image handles may be decoded
// concurrently.
func run(files []string) error {
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(*parallel)

	for _, path := range files {
		path := path
		g.Go(func() error {
			return dumpOne(path)
		})
	}
	return g.Wait()
}

func dumpOne(path string) error {
	img := upng.NewFromFile(path)
	if err := img.Decode(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Printf("%s: %dx%d %s (depth %d, %d bytes)\n",
		path, img.Width(), img.Height(), img.ColorFormat(), img.BitDepth(), img.Size())

	if *pam {
		return writePAM(path+".pam", img)
	}
	return nil
}

// writePAM writes a minimal NetPBM PAM dump of the decoded buffer so the
// output can be inspected with common image tools without needing a PNG
// re-encoder (which is out of this decoder's scope).
func writePAM(path string, img *upng.Decoder) error {
	var depth int
	var tupleType string
	switch img.Components() {
	case 1:
		depth, tupleType = 1, "GRAYSCALE"
	case 2:
		depth, tupleType = 2, "GRAYSCALE_ALPHA"
	case 3:
		depth, tupleType = 3, "RGB"
	case 4:
		depth, tupleType = 4, "RGB_ALPHA"
	default:
		return fmt.Errorf("unsupported component count %d", img.Components())
	}
	if img.BitDepth() != 8 {
		return fmt.Errorf("pam dump only supports 8-bit depth, got %d", img.BitDepth())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "P7\nWIDTH %d\nHEIGHT %d\nDEPTH %d\nMAXVAL 255\nTUPLTYPE %s\nENDHDR\n",
		img.Width(), img.Height(), depth, tupleType)
	if err != nil {
		return err
	}
	_, err = f.Write(img.Buffer())
	return err
}
