// Package store defines the storage interfaces the engine depends on.
// Implementations live in subpackages (gorm) and in test doubles.
package store
