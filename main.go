package main

import (
	"github.com/atlasfin/backoffice/config"
	"github.com/atlasfin/backoffice/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
