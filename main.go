package main

import (
	"os"

	"github.com/kube-rca/incident-desk/cmd"
)

// @title Incident Desk API
// @version 1.0
// @description IT incident tracking with cached AI root cause analysis.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
