package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-formguard/internal/cli"
)

func main() {
	err := cli.NewRootCmd().ExecuteContext(context.Background())
	if err != nil && !errors.Is(err, cli.ErrInvalid) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
