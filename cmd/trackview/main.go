// cmd/trackview/main.go
package main

import (
	"trackview/internal/app"
	"trackview/internal/appshell"
)

func main() {
	appshell.Main(app.RunInteractive)
}
