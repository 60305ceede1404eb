// cmd/siteout/main.go
package main

import (
	"github.com/levantapatin/siteout/internal/app"
	"github.com/levantapatin/siteout/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
