package commands

import (
	"github.com/spf13/cobra"

	"pta/internal/storage"
	"pta/internal/ui"
)

// BrowseCommand handles the browse command
type BrowseCommand struct {
	storage storage.Storage
	viewer  ui.Viewer
}

// NewBrowseCommand creates a new BrowseCommand
func NewBrowseCommand(st storage.Storage, viewer ui.Viewer) *BrowseCommand {
	return &BrowseCommand{
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (bc *BrowseCommand) Execute(cmd *cobra.Command, args []string) error {
	output, err := bc.storage.Load()
	if err != nil {
		return err
	}

	return bc.viewer.View(output)
}
