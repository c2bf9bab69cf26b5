// Command proxy-demo sends one request through an access-controlled proxy
// whose real subject is built on first use.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jbenet/goprocess"

	capability "github.com/ipfs/go-capability"
	"github.com/ipfs/go-capability/proxy"
)

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "proxy-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer) error {
	out := capability.NewWriterEmitter(w)

	p, err := proxy.NewLazy(func(context.Context) (capability.Capability, error) {
		return capability.NewBasic(out), nil
	}, out)
	if err != nil {
		return err
	}

	proc := goprocess.WithTeardown(p.Close)
	defer proc.Close()

	return p.Perform(ctx)
}
