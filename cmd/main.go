package main

import (
	"log"

	_ "time/tzdata"

	"github.com/openclub/lendhub/cmd/app"
	"github.com/openclub/lendhub/internal/adapters/config"
	"github.com/openclub/lendhub/internal/adapters/controller/http/setup"
)

func main() {
	cfg := config.Get()
	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	setup.Setup(a)

	a.Start()
}
