// Package model contains the database row types for the Lockbox schema.
package model
