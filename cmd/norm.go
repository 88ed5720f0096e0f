package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mensura/sampledb/internal/jsonio"
	"github.com/mensura/sampledb/norm"
	"github.com/mensura/sampledb/norm/rootio"
)

var (
	normTreeName       string // Path of the event-count tree inside tuple files
	normDropAltWeights bool   // Do not store mean alternative weights
	normOutput         string // Output normalization file
)

var normCmd = &cobra.Command{
	Use:   "norm SRC_DIR",
	Short: "Compute numbers of processed events and mean weights",
	Long: `Compute numbers of processed events and mean weights per dataset.

Event counts are read from the tree with per-job counts stored in PEC tuples.
Files of one dataset, including its extensions and parts, are combined, and
mean weights are averaged with each job weighted by its number of events.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := toolConfig.Norm
		flags := cmd.Flags()
		applyString(flags, "tree-name", &normTreeName, cfg.TreeName)
		applyBool(flags, "drop-alt-weights", &normDropAltWeights, cfg.DropAltWeights)
		applyString(flags, "output", &normOutput, cfg.Output)

		if err := runNorm(args[0], normTreeName, normDropAltWeights, normOutput); err != nil {
			logrus.Fatalf("Error: %v", err)
		}
	},
}

func runNorm(srcDir, treeName string, dropAltWeights bool, output string) error {
	reader := rootio.TreeReader{TreePath: treeName}
	records, err := norm.Scan(srcDir, reader, norm.Options{DropAltWeights: dropAltWeights})
	if err != nil {
		return err
	}
	if err := jsonio.WriteFile(output, records); err != nil {
		return err
	}
	logrus.Infof("Wrote normalization for %d datasets to %s", len(records), output)
	return nil
}

func init() {
	normCmd.Flags().StringVar(&normTreeName, "tree-name", rootio.DefaultTreePath, "Name for the tree with event counts")
	normCmd.Flags().BoolVar(&normDropAltWeights, "drop-alt-weights", false, "Do not store mean values of alternative weights")
	normCmd.Flags().StringVarP(&normOutput, "output", "o", "samples_norm.json", "Name for output file with normalization information")

	rootCmd.AddCommand(normCmd)
}
