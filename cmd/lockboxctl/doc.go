// Package main implements lockboxctl, the administration CLI for the
// Lockbox resource engine.
//
// # Quick Start
//
//	# Run database migrations
//	lockboxctl db migrate
//
//	# Inspect the effective configuration
//	lockboxctl configuration show
//
//	# Backfill resources that predate resource types
//	lockboxctl cleanup resource-types --dry-run
//
//	# Retire resources in bulk
//	lockboxctl resource soft-delete <id> [<id>...]
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - AUDIT_DATABASE_URL: optional separate audit trail database
//   - LOCKBOX_CONFIG_PATH: directory holding lockbox.yml
//   - LOCKBOX_LOG_LEVEL: log level (debug, info, warn, error)
package main
