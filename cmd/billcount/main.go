package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SamuelAdmand/Bill-Counting-Tool/internal/application/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, session.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}
