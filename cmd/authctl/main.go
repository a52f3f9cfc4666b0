package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/viant/authstate/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := cli.Run(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
