package piopack

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
)

// signalContext returns a context cancelled by the first SIGINT/SIGTERM; a
// second signal forces an immediate exit. Cancelling the context kills any
// external command the pipeline is currently blocked on.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigs:
			colArrow.Print("\n-> ")
			color.Danger.Printf("Received %v. Cancelling build gracefully\n", sig)
			cancel()
			<-sigs
			colArrow.Print("\n-> ")
			color.Danger.Println("Second interrupt received. Forcing immediate exit.")
			os.Exit(130)
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
