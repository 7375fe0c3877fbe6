// cmd/trackview-batch/main.go
package main

import (
	"trackview/internal/app"
	"trackview/internal/appshell"
)

func main() {
	appshell.Main(app.RunBatch)
}
