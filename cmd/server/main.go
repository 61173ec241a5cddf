package main

import (
	"context"
	"log"
	"os"

	"github.com/dkurbatov/goblog/internal/buildinfo"
	"github.com/dkurbatov/goblog/internal/server"
	"github.com/dkurbatov/goblog/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
