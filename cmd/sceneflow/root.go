package main

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "sceneflow",
	Short:   "sceneflow is the state core of a narrative scene graph editor",
	Long:    "sceneflow manages the scene graph behind a narrative node editor:\nserve the editing session API, or validate, export, and import scene snapshots.",
	Version: version,
}

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		validateCmd(),
		exportCmd(),
		importCmd(),
		newCmd(),
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
