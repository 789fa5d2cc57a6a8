package app

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gilleslandais/astropy"
	"github.com/gilleslandais/astropy/internal/cmd/output"
	"github.com/gilleslandais/astropy/pkg/sesame"
)

// resolveResult is the renderable outcome of one name resolution.
type resolveResult struct {
	Name           string  `json:"name"`
	Identifier     string  `json:"identifier,omitempty"`
	Classification string  `json:"classification,omitempty"`
	RA             float64 `json:"ra"`
	Dec            float64 `json:"dec"`
}

// newResolveCommand creates the resolve command.
func (a *App) newResolveCommand() *cobra.Command {
	var (
		database string
		parse    bool
		useCache bool
		cacheDir string
		mirrors  []string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "resolve <name>...",
		Short: "Resolve object names to ICRS coordinates",
		Long: `Resolve one or more astronomical object names to ICRS coordinates.

Each name is sent to the configured Sesame mirrors in order until one
returns a match. With --parse, names carrying embedded J-coordinates
(such as "2MASS J06495091-0737408") are decoded locally instead.`,
		Example: `  sesame resolve "NGC 3642"
  sesame resolve -d simbad castor pollux
  sesame resolve --parse "CRTS SSS100805 J194428-420209"
  sesame resolve --cache --cache-dir ~/.cache/sesame m13`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []astropy.Option{
				astropy.WithLogger(a.logger),
				astropy.WithHTTPTimeout(timeout),
			}

			if database != "" {
				db, err := sesame.ParseDatabase(database)
				if err != nil {
					return err
				}
				opts = append(opts, astropy.WithDatabase(db))
			}
			if len(mirrors) > 0 {
				opts = append(opts, astropy.WithMirrors(mirrors...))
			}
			if useCache {
				opts = append(opts, astropy.WithCache(true))
				if cacheDir != "" {
					opts = append(opts, astropy.WithCacheDir(cacheDir))
				}
			}
			if parse {
				opts = append(opts, astropy.WithEmbeddedParsing())
			}

			resolver, err := astropy.New(opts...)
			if err != nil {
				return err
			}

			results := make([]resolveResult, 0, len(args))
			for _, name := range args {
				resp, err := resolver.Lookup(cmd.Context(), name)
				if err != nil {
					return err
				}
				results = append(results, resolveResult{
					Name:           name,
					Identifier:     resp.Identifier,
					Classification: resp.Classification,
					RA:             resp.Coordinate.RA,
					Dec:            resp.Coordinate.Dec,
				})
			}

			formatter := output.NewFormatter(output.Format(a.config.Format))
			if len(results) == 1 {
				return formatter.Format(cmd.OutOrStdout(), results[0])
			}
			return formatter.Format(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().StringVarP(&database, "database", "d", a.config.Database, "database to query: simbad, ned, vizier, all")
	cmd.Flags().BoolVar(&parse, "parse", false, "decode coordinates embedded in the name instead of querying mirrors")
	cmd.Flags().BoolVar(&useCache, "cache", a.config.Cache, "cache mirror responses")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", a.config.CacheDir, "directory for the persistent response cache")
	cmd.Flags().StringSliceVar(&mirrors, "mirror", a.config.Mirrors, "mirror base URL, repeatable (overrides defaults)")
	cmd.Flags().DurationVar(&timeout, "timeout", a.config.HTTPTimeout, "per-request HTTP timeout")

	return cmd
}
