package cmd

import (
	"github.com/evsiren/evset/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command) []config.Option

// rootFlags converts persistent flags set on the command line to options.
func rootFlags(cmd *cobra.Command) []config.Option {
	var res []config.Option
	for _, f := range []funcFlag{labelsFlag, outputDirFlag, jobsFlag, logLevelFlag} {
		res = append(res, f(cmd)...)
	}
	return res
}

func labelsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("labels") {
		return nil
	}
	s, _ := cmd.Flags().GetString("labels")
	return []config.Option{config.OptLabelsFile(s)}
}

func outputDirFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("output-dir") {
		return nil
	}
	s, _ := cmd.Flags().GetString("output-dir")
	return []config.Option{config.OptOutputDir(s)}
}

func jobsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("jobs") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("jobs")
	return []config.Option{config.OptJobsNumber(i)}
}

func logLevelFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("log-level") {
		return nil
	}
	s, _ := cmd.Flags().GetString("log-level")
	return []config.Option{config.OptLogLevel(s)}
}

// seedFlags adds rebalancing flags to a command.
func seedFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("seed", 0, "seed of the rebalancing random source")
	cmd.Flags().Bool("strict", false, "fail when a focus label has no rows")
}

func rebalanceFlags(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("seed") {
		i, _ := cmd.Flags().GetInt64("seed")
		res = append(res, config.OptRebalanceSeed(i))
	}
	if cmd.Flags().Changed("strict") {
		b, _ := cmd.Flags().GetBool("strict")
		res = append(res, config.OptRebalanceStrict(b))
	}
	return res
}
