package main

import (
	"skinsense.io/infrastructure"
	"skinsense.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
