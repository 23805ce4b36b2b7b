package list_tokenizers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/walteh/tokscan/pkg/config"
)

func NewTokenizersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenizers",
		Short: "list the tokenizer kinds a config file may declare",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Print(cmd.OutOrStdout())
		},
	}
}

func Print(w io.Writer) error {
	width := 0
	for _, kind := range config.Kinds() {
		width = max(width, len(kind))
	}

	bold := color.New(color.Bold)
	for _, kind := range config.Kinds() {
		// pad before colouring so escape codes do not skew the alignment
		name := bold.Sprint(fmt.Sprintf("%-*s", width, kind))
		if _, err := fmt.Fprintf(w, "%s  %s\n", name, config.Describe(kind)); err != nil {
			return err
		}
	}

	return nil
}
