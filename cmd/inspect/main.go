// Command inspect locates and parses the annotations of a single image and
// prints what the gallery would draw: the matched file, every box with its
// derived color, and the review status.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wb-go/wbf/zlog"

	"github.com/velikanov/thumbgrid/internal/annotation"
	"github.com/velikanov/thumbgrid/internal/overlay"
)

func main() {
	zlog.Init()

	imagePath := flag.String("image", "", "path to the image file")
	altDir := flag.String("dir", "", "alternate annotation directory (optional)")
	flag.Parse()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect -image <path> [-dir <annotation dir>]")
		os.Exit(2)
	}

	match, ok := annotation.Locate(*imagePath, *altDir)
	if !ok {
		fmt.Printf("no annotation file found for %s\n", *imagePath)
		return
	}

	fmt.Printf("annotation file: %s (%s)\n", match.Path, match.Format)
	if match.ClassList != "" {
		fmt.Printf("class list:      %s\n", match.ClassList)
	}
	fmt.Printf("status:          %s\n", annotation.Status(*imagePath, *altDir))

	boxes := annotation.Parse(match)
	if len(boxes) == 0 {
		fmt.Println("no boxes (file is empty or malformed)")
		return
	}

	fmt.Printf("boxes (%d):\n", len(boxes))
	for _, b := range boxes {
		c := overlay.ColorForLabel(b.Label)
		fmt.Printf("  %-20s center=(%.4f, %.4f) size=(%.4f, %.4f) color=#%02X%02X%02X\n",
			b.Label, b.XCenter, b.YCenter, b.Width, b.Height, c.R, c.G, c.B)
	}
}
