package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oisee/satsolve/pkg/batch"
	"github.com/oisee/satsolve/pkg/config"
	"github.com/oisee/satsolve/pkg/dimacs"
	"github.com/oisee/satsolve/pkg/solver"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "satsolve",
		Short: "DPLL SAT solver over DIMACS CNF input",
	}

	// solve command
	var configPath string
	var checkpointPath string

	solveCmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve a single DIMACS file, printing the status and witness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			rc, err := dimacs.Open(args[0])
			if err != nil {
				return err
			}
			defer rc.Close()

			clauses, err := dimacs.All(dimacs.New(rc))
			if err != nil {
				return fmt.Errorf("satsolve: parse %s: %w", args[0], err)
			}

			s := solver.New(clauses)
			steps := 0
			for !s.Finished() {
				if cfg.StepBudget > 0 && steps >= cfg.StepBudget {
					break
				}
				s.Step()
				steps++

				if checkpointPath != "" && cfg.CheckpointEvery > 0 && steps%cfg.CheckpointEvery == 0 {
					cp := s.Checkpoint("")
					if err := solver.SaveCheckpoint(checkpointPath, cp); err != nil {
						return err
					}
				}
			}

			return printResult(s)
		},
	}
	solveCmd.Flags().StringVar(&configPath, "config", "", "YAML config file path")
	solveCmd.Flags().StringVar(&checkpointPath, "checkpoint", "", "Checkpoint file to write periodically")

	// batch command
	var workers int
	var batchStepBudget int
	var batchVerbose bool

	batchCmd := &cobra.Command{
		Use:   "batch [file...]",
		Short: "Solve many DIMACS files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var progress io.Writer
			if batchVerbose {
				progress = os.Stderr
			}

			table := batch.Run(batch.Config{
				Paths:      args,
				Workers:    workers,
				StepBudget: batchStepBudget,
				Verbose:    batchVerbose,
			}, progress)

			results := table.Results()
			failed := 0
			for _, r := range results {
				status := r.Status.String()
				if r.Err != nil {
					status = "Error"
					failed++
				}
				fmt.Printf("%s: %s\n", r.Path, status)
				if r.Err != nil {
					fmt.Printf("  %v\n", r.Err)
				}
			}
			fmt.Printf("\n%d files, %d errored\n", len(results), failed)
			return nil
		},
	}
	batchCmd.Flags().IntVar(&workers, "workers", 1, "Worker count")
	batchCmd.Flags().IntVar(&batchStepBudget, "step-budget", 0, "Per-file step budget (0 = unbounded)")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Report progress to stderr")

	// resume command
	resumeCmd := &cobra.Command{
		Use:   "resume [checkpoint]",
		Short: "Resume a solve from a checkpoint file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cp, err := solver.LoadCheckpoint(args[0])
			if err != nil {
				return err
			}

			s := solver.FromCheckpoint(cp)
			for !s.Finished() {
				s.Step()
			}

			return printResult(s)
		},
	}

	rootCmd.AddCommand(solveCmd, batchCmd, resumeCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printResult(s *solver.Solver) error {
	fmt.Println(s.Status)
	if s.Status != solver.Sat {
		return nil
	}

	witness := s.Witness()
	fmt.Println(witness)
	fmt.Println(solver.Check(s.Clauses, witness))
	return nil
}
