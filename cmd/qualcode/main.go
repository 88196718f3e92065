// Package main provides the qualcode CLI application.
// qualcode codes survey responses and derives mixed-methods analyses.
package main

import (
	"github.com/qualverse/qualcode/cmd"
)

func main() {
	cmd.Execute()
}
