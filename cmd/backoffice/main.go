package main

import (
	"fmt"
	"os"

	"github.com/interiorfitout/backoffice/internal/cli"
)

// Set via -ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// @title           Fit-out Back Office API
// @version         1.0
// @description     Admin authentication, enquiry management and dashboard stats for the fit-out company site.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
