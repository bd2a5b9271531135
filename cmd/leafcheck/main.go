// Command leafcheck uploads a leaf photo to the server and prints the diagnosis.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"plant_backend/internal/client"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "base URL of the diagnosis server")
	timeout := flag.Duration("timeout", 60*time.Second, "per-request timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <image>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("failed to read image", "path", path, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Analyzing...")
	report, err := client.New(*server, *timeout).Diagnose(ctx, filepath.Base(path), data)
	if err != nil {
		var stepErr *client.StepError
		if errors.As(err, &stepErr) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", stepErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Image:      %s\n", report.Object.URL)
	fmt.Printf("Condition:  %s\n", report.Analysis.Name)
	fmt.Printf("Confidence: %.1f%%\n", report.Analysis.Score*100)
	fmt.Printf("Care:       %s\n", report.Analysis.Care)
	slog.Debug("diagnosis finished", "elapsed", report.Elapsed)
}
