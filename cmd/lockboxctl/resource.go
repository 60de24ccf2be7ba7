package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lockboxhq/lockbox/pkg/config"
	"github.com/lockboxhq/lockbox/pkg/db"
	"github.com/lockboxhq/lockbox/pkg/resource"
	gormstore "github.com/lockboxhq/lockbox/pkg/store/gorm"
)

// resourceCmd represents the resource command
var resourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "Manage resources",
	Long:  `Administrative resource operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'resource' requires a subcommand (soft-delete)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// resourceSoftDeleteCmd retires resources in bulk
var resourceSoftDeleteCmd = &cobra.Command{
	Use:   "soft-delete <id> [<id>...]",
	Short: "Soft delete resources and their dependent records",
	Long: `Soft delete resources and their dependent records.

Each resource is flagged deleted, its sensitive metadata is scrubbed and,
unless --no-cascade is given, its permissions, secrets and favorites are
removed. Already deleted and unknown ids are skipped. This is an
administrative command; it bypasses per-user access checks.

Example:
  lockboxctl resource soft-delete 2f9bbbc4-1731-45d1-9871-4d1d47a21bd6`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		noCascade, _ := cmd.Flags().GetBool("no-cascade")

		if err := softDeleteResources(args, !noCascade); err != nil {
			fmt.Fprintf(os.Stderr, "Soft delete failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(resourceCmd)
	resourceCmd.AddCommand(resourceSoftDeleteCmd)
	resourceSoftDeleteCmd.Flags().Bool("no-cascade", false, "Leave dependent permission, secret and favorite rows in place")
}

func softDeleteResources(ids []string, cascade bool) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	ctx := context.Background()
	coordinator := resource.NewCoordinator(gormstore.NewStore(database))

	// Large batches are retired in chunks so a huge id list cannot hold
	// row locks for the whole run.
	batchSize := config.Get().CleanupBatchSize
	var total int64
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		n, err := coordinator.SoftDeleteMany(ctx, ids[start:end], cascade)
		if err != nil {
			return err
		}
		total += n
	}

	fmt.Printf("Soft deleted %d of %d resource(s)\n", total, len(ids))
	return nil
}
