package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/xnat/convertdemo/cmd/convertdemo"
	"github.com/xnat/convertdemo/internal/version"
)

func main() {
	rootCmd := convertdemo.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "CONVERTDEMO",
		Section: "1",
		Source:  "convertdemo " + version.Version,
		Manual:  "convertdemo manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
