package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/wallpaper/internal/infrastructure/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, closer := cli.NewRootCmd(ctx, opts)
	defer closer.Close()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("WALLPAPER_DEBUG"), "1") || strings.EqualFold(os.Getenv("WALLPAPER_DEBUG"), "true")
}
