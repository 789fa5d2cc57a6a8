package app

import (
	"github.com/spf13/cobra"

	"github.com/gilleslandais/astropy/internal/cmd/output"
	"github.com/gilleslandais/astropy/pkg/sesame"
)

// mirrorInfo is the renderable description of one configured mirror.
type mirrorInfo struct {
	Order int    `json:"order"`
	URL   string `json:"url"`
}

// newMirrorsCommand creates the mirrors command.
func (a *App) newMirrorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mirrors [url...]",
		Short: "List or validate Sesame mirrors",
		Long: `List the Sesame mirror base URLs in the order they are tried.

Mirrors come from the --mirror flag, the SESAME_MIRRORS environment
variable, or the config file; with none of those set the built-in
CDS and CfA mirrors are used.

With URL arguments, the given list is validated the same way the
resolver validates it and printed on success. Every entry must be an
absolute http(s) URL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := sesame.NewRegistry()

			switch {
			case len(args) > 0:
				if err := registry.SetMirrors(args); err != nil {
					return err
				}
			case len(a.config.Mirrors) > 0:
				if err := registry.SetMirrors(a.config.Mirrors); err != nil {
					return err
				}
			}

			mirrors := registry.Mirrors()
			infos := make([]mirrorInfo, 0, len(mirrors))
			for i, m := range mirrors {
				infos = append(infos, mirrorInfo{Order: i + 1, URL: m})
			}

			formatter := output.NewFormatter(output.Format(a.config.Format))
			return formatter.Format(cmd.OutOrStdout(), infos)
		},
	}
}
