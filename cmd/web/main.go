package main

import "aipromptweb_backend/internal/app"

func main() {
	app.Run()
}
