package main

import (
	"os"

	"docuchat/client/internal/app"
)

func main() {
	os.Exit(app.Run())
}
