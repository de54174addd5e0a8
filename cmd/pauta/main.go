package main

import (
	"pauta/cmd/cmd"
	"pauta/internal/logger"
)

func main() {
	logger.Init()
	cmd.Execute()
}
