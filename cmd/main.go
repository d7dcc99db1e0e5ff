package main

import (
	"github.com/corray333/backend-labs/cam2cart/internal/app"
	"github.com/corray333/backend-labs/cam2cart/internal/config"
)

//	@title			Cam2Cart Order API
//	@version		1.0
//	@description	CRUD over orders backed by a document store.
//	@BasePath		/
func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
