package main

import (
	"github.com/izzybakes/pastry-orders/internal/app"
	"github.com/izzybakes/pastry-orders/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
