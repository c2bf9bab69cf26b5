// Command border-demo draws one primitive with a border around it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jbenet/goprocess"

	capability "github.com/ipfs/go-capability"
	"github.com/ipfs/go-capability/border"
)

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "border-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer) error {
	out := capability.NewWriterEmitter(w)

	g, err := capability.Chain(capability.NewPrimitive(10, 20, 100, 50, out),
		border.Decorator("red thick", out),
	)
	if err != nil {
		return err
	}

	proc := goprocess.WithTeardown(func() error {
		return capability.Close(g)
	})
	defer proc.Close()

	return g.Perform(ctx)
}
