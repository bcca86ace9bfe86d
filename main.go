package main

import "lootlogger/internal/app"

func main() {
	app.Main()
}
