package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/vibegen/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, closer := cli.NewRootCmd(ctx, opts)
	err := root.ExecuteContext(ctx)
	if cerr := closer.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	v := os.Getenv("VIBEGEN_DEBUG")
	return strings.EqualFold(v, "1") || strings.EqualFold(v, "true")
}
