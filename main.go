// go-kindgen is a tool designed to be called by go:generate for expanding
// closed unions (marker-method interfaces) into kind enums and accessors.
//
// See [README] for more documentation
//
// [README]: https://pkg.go.dev/github.com/a-jentleman/go-kindgen
package main

import (
	"github.com/a-jentleman/go-kindgen/internal/cmd"
)

func main() {
	cmd.Execute()
}
