package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/clouddevops/devopsapp/internal/awsutil"
	"github.com/clouddevops/devopsapp/internal/compute"
	"github.com/clouddevops/devopsapp/internal/config"
	"github.com/clouddevops/devopsapp/internal/stopper"
)

// newStopper builds the instance stopper; replaced in tests.
var newStopper = func(ctx context.Context, cfg *config.Config, dryRun bool) (compute.InstanceStopper, error) {
	awsCfg, err := awsutil.LoadConfig(ctx, awsutil.Options{
		Region:          cfg.Region,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		Endpoint:        cfg.Endpoint,
	})
	if err != nil {
		return nil, err
	}
	s := compute.NewEC2Stopper(awsCfg)
	s.DryRun = dryRun
	return s, nil
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the target EC2 instance",
	Long: `Run the instance-stop handler locally. The instance defaults to
INSTANCE_ID; --instance-id overrides it. The command returns once EC2 has
accepted the request and does not wait for the instance to stop.
With --dry-run EC2 only checks that the caller may stop the instance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if id, _ := cmd.Flags().GetString("instance-id"); id != "" {
			cfg.InstanceID = id
		}
		if region, _ := cmd.Flags().GetString("region"); region != "" {
			cfg.Region = region
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		s, err := newStopper(ctx, cfg, dryRun)
		if err != nil {
			return fmt.Errorf("failed to create EC2 client: %w", err)
		}

		res, err := stopper.New(stopper.Config{InstanceID: cfg.InstanceID}, s).Handle(ctx, nil)
		if err != nil {
			return err
		}

		data, _ := json.MarshalIndent(res, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	stopCmd.Flags().String("instance-id", "", "Instance to stop (default $INSTANCE_ID)")
	stopCmd.Flags().Bool("dry-run", false, "Check permissions without stopping the instance")
	stopCmd.Flags().String("region", os.Getenv("AWS_REGION"), "AWS region")
	rootCmd.AddCommand(stopCmd)
}
