package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mensura/sampledb/catalog"
)

var inspectBaseDir string // Directory against which relative masks are resolved

var inspectCmd = &cobra.Command{
	Use:   "inspect CATALOG [DATASET_ID...]",
	Short: "Resolve datasets from a sample database",
	Long: `Resolve datasets from a sample database the way the analysis framework does
and print, for each of them, the number of files matched on disk, the number of
processed events, the cross section, and the per-event weight that normalizes
the sample to 1/pb. Without dataset IDs all datasets are listed.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(os.Stdout, args[0], inspectBaseDir, args[1:]); err != nil {
			logrus.Fatalf("Error: %v", err)
		}
	},
}

func runInspect(w io.Writer, path, baseDir string, ids []string) error {
	c, err := catalog.Load(path)
	if err != nil {
		return err
	}
	if baseDir != "" {
		c.BaseDir = baseDir
	}
	if len(ids) == 0 {
		ids = c.IDs()
	}

	datasets, err := c.Select(ids...)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATASET\tTYPE\tFILES\tEVENTS\tCROSS SECTION [pb]\tWEIGHT")
	for _, d := range datasets {
		files, err := d.ExpandFiles()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			logrus.Warnf("dataset %q: masks match no files", d.ID)
		}
		if d.IsData {
			fmt.Fprintf(tw, "%s\tdata\t%d\t-\t-\t-\n", d.ID, len(files))
			continue
		}
		fmt.Fprintf(tw, "%s\tsimulation\t%d\t%s\t%s\t%.6g\n",
			d.ID, len(files), humanize.Comma(d.EventsProcessed),
			humanize.FormatFloat("#,###.##", d.CrossSection), d.WeightFactor())
	}
	return tw.Flush()
}

func init() {
	inspectCmd.Flags().StringVar(&inspectBaseDir, "base-dir", "", "Directory for relative file masks (default: directory of the catalog)")

	rootCmd.AddCommand(inspectCmd)
}
