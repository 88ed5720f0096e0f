package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mensura/sampledb/catalog"
)

var (
	buildDescriptions string // Input file with sample descriptions
	buildNorm         string // Input normalization file
	buildOutput       string // Output catalog file
)

var buildCmd = &cobra.Command{
	Use:   "build SRC_DIR",
	Short: "Create the database of samples",
	Long: `Create the database of samples from sample descriptions and normalization.

The descriptions file lists samples as in

  [
    {"datasetId": "ttbar_pw", "isData": false, "crossSection": 831.76},
    ...
  ]

where "isData" defaults to false and the cross section, in pb, is only used
for simulation. The normalization file is produced by "sampledb norm"; mean
alternative weights are never copied to the database. Masks selecting the
ROOT files of each sample are derived from the files found in SRC_DIR.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := toolConfig.Build
		flags := cmd.Flags()
		applyString(flags, "defs", &buildDescriptions, cfg.Descriptions)
		applyString(flags, "norm", &buildNorm, cfg.Norm)
		applyString(flags, "output", &buildOutput, cfg.Output)

		if err := runBuild(args[0], buildDescriptions, buildNorm, buildOutput); err != nil {
			logrus.Fatalf("Error: %v", err)
		}
	},
}

func runBuild(srcDir, descriptions, normPath, output string) error {
	records, err := catalog.Build(catalog.BuildConfig{
		SourceDir:        srcDir,
		DescriptionsPath: descriptions,
		NormPath:         normPath,
	})
	if err != nil {
		return err
	}
	if err := catalog.Write(output, records); err != nil {
		return err
	}
	logrus.Infof("Wrote %d samples to %s", len(records), output)
	return nil
}

func init() {
	buildCmd.Flags().StringVarP(&buildDescriptions, "defs", "d", "samples_descriptions.json", "Input JSON file with the list of samples")
	buildCmd.Flags().StringVarP(&buildNorm, "norm", "n", "samples_norm.json", "JSON file with information about normalization for MC samples")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "samples.json", "Name for output JSON file")

	rootCmd.AddCommand(buildCmd)
}
