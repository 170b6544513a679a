package main

import (
	"context"
	"log"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewApp(parseArgs(), os.Stdout).Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
}
