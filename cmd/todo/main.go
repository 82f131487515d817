package main

import (
	"fmt"
	"os"

	"github.com/Makepad-fr/todotxt/internal/cli"
	"github.com/Makepad-fr/todotxt/internal/config"
)

func main() {
	// todo.txt and todo.toml live next to the binary.
	dir, err := config.ExecutableDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitError)
	}

	os.Exit(cli.Run(os.Args[1:], cli.Options{Dir: dir}))
}
