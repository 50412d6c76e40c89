package main

import (
	"fmt"
	"os"

	"github.com/xnat/convertdemo/cmd/convertdemo"
	"github.com/xnat/convertdemo/pkg/ui/output/styles"
)

func main() {
	rootCmd := convertdemo.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
