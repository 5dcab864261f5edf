// Command discolight runs the disco light loop against a simulated render
// view.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/discolight/discolight/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
