package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kingdread/gpx"
	gpxerrors "github.com/Kingdread/gpx/errors"
)

func newValidateCommand(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Parse GPX files and report classified errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				start := time.Now()
				doc, err := gpx.ReadFile(path)
				if err != nil {
					failed++
					if p, ok := gpxerrors.AsParse(err); ok {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, p.Error())
					} else {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					}
					continue
				}
				log.WithFields(logrus.Fields{
					"file":      path,
					"duration":  time.Since(start),
					"waypoints": len(doc.Waypoints),
					"routes":    len(doc.Routes),
					"tracks":    len(doc.Tracks),
				}).Debug("parsed GPX document")
				fmt.Fprintf(cmd.OutOrStdout(), "%s validates\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to validate", failed, len(args))
			}
			return nil
		},
	}
}
