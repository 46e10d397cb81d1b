package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophslides/internal/buildinfo"
	"github.com/dmitrijs2005/gophslides/internal/server"
	"github.com/dmitrijs2005/gophslides/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stderr)

	ctx := context.Background()

	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "gophslides server: %v\n", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
