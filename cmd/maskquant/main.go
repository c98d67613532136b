// Command maskquant runs the palette quantization pipeline on an image file
// without the GUI. It implements the command-line contract that
// quantize.Tool expects from an external post-processor.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	pximage "pixelmask/internal/image"
	"pixelmask/internal/quantize"
)

func main() {
	log.SetFlags(0)

	colors := flag.Int("colors", 16, "palette size (1-256)")
	scale := flag.Int("scale", 1, "dither pattern scale (1-5)")
	dither := flag.Bool("dither", false, "apply ordered dithering")
	colorCorrect := flag.Bool("color-correct", false, "stretch levels before quantizing")
	palette := flag.String("palette", "", "derive the palette from this image instead of the input")
	out := flag.String("o", "", "output path (default: <input>_quantized.png)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: maskquant [flags] <image>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	src := flag.Arg(0)

	params := quantize.Params{
		MaxColors:    *colors,
		DitherScale:  *scale,
		Dither:       *dither,
		ColorCorrect: *colorCorrect,
		UsePalette:   *palette != "",
		PalettePath:  *palette,
	}
	if err := params.Validate(); err != nil {
		log.Fatalf("maskquant: %v", err)
	}

	buf, err := pximage.Load(src)
	if err != nil {
		log.Fatalf("maskquant: %v", err)
	}

	result, err := quantize.Apply(buf, params)
	if err != nil {
		log.Fatalf("maskquant: %v", err)
	}

	outPath := *out
	if outPath == "" {
		outPath = pximage.DerivedPath(src, "quantized")
	}
	if err := pximage.SavePNG(outPath, result); err != nil {
		log.Fatalf("maskquant: %v", err)
	}
	fmt.Println(outPath)
}
