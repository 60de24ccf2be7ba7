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

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Run data consistency cleanup tasks",
	Long:  `Run data consistency cleanup tasks against the database.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'cleanup' requires a subcommand (resource-types)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// cleanupResourceTypesCmd backfills resources missing a resource type
var cleanupResourceTypesCmd = &cobra.Command{
	Use:   "resource-types",
	Short: "Assign the default resource type to resources missing one",
	Long: `Assign the default resource type to resources missing one.

Resources created before resource types existed carry no type reference.
This command points them at the configured default type. With --dry-run it
only reports how many rows would change.

Example:
  lockboxctl cleanup resource-types --dry-run
  lockboxctl cleanup resource-types`,
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if err := cleanupResourceTypes(dryRun); err != nil {
			fmt.Fprintf(os.Stderr, "Cleanup failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.AddCommand(cleanupResourceTypesCmd)
	cleanupResourceTypesCmd.Flags().Bool("dry-run", false, "Only report the number of rows that would change")
}

func cleanupResourceTypes(dryRun bool) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	ctx := context.Background()
	st := gormstore.NewStore(database)

	slug := config.Get().DefaultResourceTypeSlug
	typeID, err := st.ResourceTypes().IDBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to resolve default resource type %q: %w", slug, err)
	}

	coordinator := resource.NewCoordinator(st)
	n, err := coordinator.BackfillDefaultResourceType(ctx, typeID, dryRun)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("%d resource(s) would be assigned the default resource type\n", n)
	} else {
		fmt.Printf("Assigned the default resource type to %d resource(s)\n", n)
	}
	return nil
}
