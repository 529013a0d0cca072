// Command holdings compares and analyzes portfolio holding snapshots.
package main

import (
	"os"

	"github.com/spergel/new-finance-sub001/cmd/holdings/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		handler := cmd.NewCLIErrorHandler()
		os.Exit(handler.HandleError(err))
	}
}
