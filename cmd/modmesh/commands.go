package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modmesh/modmesh-go/internal/array"
	"github.com/modmesh/modmesh-go/internal/logging"
	"github.com/modmesh/modmesh-go/internal/profile"
	"github.com/modmesh/modmesh-go/internal/simd"
)

func newRootCmd() *cobra.Command {
	var (
		logLevel string
		logJSON  bool
	)

	root := &cobra.Command{
		Use:           "modmesh",
		Short:         "Inspect and profile the modmesh array core",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logging.Install(logging.Config{Level: level, JSON: logJSON, Output: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs as JSON")

	root.AddCommand(newVersionCmd(), newSIMDCmd(), newProfileCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "modmesh %s\n", version)
		},
	}
}

func newSIMDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simd",
		Short: "Show the detected and selected SIMD capability",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "detected: %s\n", simd.Detect())
			selected := simd.Current()
			fmt.Fprintf(out, "selected: %s\n", selected)
			if v, ok := os.LookupEnv(simd.EnvOverride); ok {
				fmt.Fprintf(out, "override: %s=%s\n", simd.EnvOverride, v)
			}
			fmt.Fprintln(out, "lanes:")
			for _, dt := range array.DataTypes() {
				fmt.Fprintf(out, "  %-8s %d\n", dt, selected.Lanes(dt.Size()))
			}
		},
	}
}

func newProfileCmd() *cobra.Command {
	var (
		planPath   string
		iterations int
		length     int
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Time the scalar and vector arithmetic loops",
		Long: `Profile runs add/sub/mul (or the operators named in the plan) over random
unsigned operands and prints, per operator and value range, the mean time per
call of each loop and its ratio to the scalar loop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan := profile.DefaultPlan()
			if planPath != "" {
				p, err := profile.LoadPlan(planPath)
				if err != nil {
					return err
				}
				plan = p
			}
			if iterations > 0 {
				plan.Iterations = iterations
			}
			if length > 0 {
				plan.Length = length
			}

			tables, err := profile.Run(cmd.Context(), plan)
			if err != nil {
				return err
			}
			for _, t := range tables {
				if err := t.WriteMarkdown(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&planPath, "config", "", "YAML profile plan")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "override the plan's iteration count")
	cmd.Flags().IntVar(&length, "length", 0, "override the plan's element count")
	return cmd
}
