package main

import (
	"context"

	"github.com/vpopov/authgate/internal/client/cli"
	"github.com/vpopov/authgate/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
