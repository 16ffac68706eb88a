// Command lc3 runs the LC-3 emulator against one or more object image
// files, or runs its built-in self-test suite.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lc3vm/emu"
	"lc3vm/internal/selftest"
	"lc3vm/loader"
	"lc3vm/term"
)

const usage = "lc3 --test | [image-file1] ...\n"

func main() {
	var test bool

	root := &cobra.Command{
		Use:                   "lc3 [image-file]...",
		Short:                 "LC-3 virtual machine",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Args:                  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if test {
				os.Exit(selftest.Run(os.Stdout))
			}
			if len(args) < 1 {
				fmt.Fprint(os.Stdout, usage)
				os.Exit(2)
			}
			os.Exit(run(args))
			return nil
		},
	}
	root.Flags().BoolVar(&test, "test", false, "run the built-in self-test suite and exit")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lc3: %v\n", err)
		os.Exit(1)
	}
}

func run(paths []string) int {
	raw, err := term.EnterRaw(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3: failed to configure terminal: %v\n", err)
		return 1
	}
	defer raw.Restore()

	vm := emu.New()

	for _, path := range paths {
		img, err := loader.LoadPath(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lc3: failed to load %s: %v\n", path, err)
			return 1
		}
		vm.LoadImage(img.Origin, img.Words)
	}

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupted
		raw.Restore()
		os.Exit(254)
	}()

	if err := vm.Run(); err != nil {
		return 1
	}
	return 0
}
