// Package dbx owns the database connection used by the postgres
// repositories. ConnManager opens the pool lazily, heals it after connection
// failures and reports those failures as common.ErrBackendUnavailable.
package dbx
