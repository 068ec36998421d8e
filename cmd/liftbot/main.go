package main

import (
	"log"

	"github.com/m3rciful/liftbot/app"
	corecmd "github.com/m3rciful/liftbot/core/cmd"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config/config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.Load(path)
		},
		Bootstrap: app.Bootstrap,
	})
	if err != nil {
		log.Fatalf("liftbot: %v", err)
	}
}
