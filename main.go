package main

import (
	"log"
	"os"

	"github.com/Rakhulsr/go-catalog/app/cmd"
	"github.com/Rakhulsr/go-catalog/app/configs"
	"github.com/Rakhulsr/go-catalog/app/logger"
)

func main() {
	env := configs.LoadEnv()

	if err := logger.Init(env.LogConfig()); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}

	if err := cmd.RunCli(env, os.Args); err != nil {
		logger.Get().WithError(err).Fatal("command failed")
	}
}
