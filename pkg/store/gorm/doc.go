// Package gorm implements the store interfaces on PostgreSQL using GORM.
//
// Store.Atomically wraps the callback in a database transaction and hands
// it a bundle whose resource reads take row-level write locks, so
// concurrent mutations of the same resource serialize on the database.
package gorm
