//go:build tinygo && baremetal

package main

import (
	"rover/app"
	"rover/hal"
)

func main() {
	app.Run(hal.New())
}
