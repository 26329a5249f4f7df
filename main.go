package main

import (
	"log"

	"github.com/hari-dev-003/Achieve/config"
	"github.com/hari-dev-003/Achieve/db"
	"github.com/hari-dev-003/Achieve/route"
)

func main() {
	config.Logger()
	config.LoadEnv()

	db.ConnectDB()

	app := config.NewApp()

	route.SetupRoutes(app, db.GetDB(), db.GetMongo())

	log.Fatal(app.Listen(":" + config.Env.AppPort))
}
