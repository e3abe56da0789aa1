// Command bbox-annotator serves a browser canvas for drawing bounding boxes
// over an image. Boxes are saved next to the image as
// "<image_path>_bboxes.json", an array of [start_x, start_y, end_x, end_y]
// rectangles.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/VJd357/Happyplates/internal/annotate"
	"github.com/VJd357/Happyplates/internal/observability"
)

func main() {
	var (
		addr    = flag.String("addr", ":8081", "listen address")
		logFile = flag.String("log", "process_log.log", "log file path")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <image>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	imagePath := flag.Arg(0)

	if _, err := os.Stat(imagePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open image: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewFileLogger(*logFile, "info", "bbox-annotator")
	session := annotate.NewSession(imagePath)
	srv := annotate.NewServer(session, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Annotating %s — open http://localhost%s in a browser\n", imagePath, *addr)
	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
