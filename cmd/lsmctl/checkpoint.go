package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/microhh-go/landsurface/checkpoint"
)

var (
	checkpointDir    string
	checkpointBucket string
	checkpointStep   int
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Write a synthetic domain's state through a checkpoint.Store.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		m, _ := buildSyntheticModel()
		if err := m.Init(); err != nil {
			return err
		}
		if err := m.Checkpoint(store, checkpointStep); err != nil {
			return err
		}
		fmt.Printf("wrote checkpoint at step %d\n", checkpointStep)
		return nil
	},
}

func init() {
	checkpointCmd.Flags().StringVar(&checkpointDir, "dir", "./lsm-checkpoints", "local checkpoint directory, used when --bucket is empty")
	checkpointCmd.Flags().StringVar(&checkpointBucket, "bucket", "", "S3 bucket name; when set, overrides --dir")
	checkpointCmd.Flags().IntVar(&checkpointStep, "step", 0, "checkpoint step number")
}

func openStore() (checkpoint.Store, error) {
	if checkpointBucket != "" {
		return checkpoint.NewS3Store(checkpointBucket, "lsm")
	}
	return checkpoint.LocalStore{Dir: checkpointDir}, nil
}
