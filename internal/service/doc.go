// Package service contains the application use cases: account management,
// tag and task management for a signed-in user, and the admin operations.
//
// Services receive their stores through constructor injection and depend only
// on the interfaces in internal/store. Operations that read and then write
// (partial updates, tag ownership checks) run inside store.RunInTransaction
// against the transaction-bound stores returned by WithTx.
//
// Authentication lives in the auth subpackage; TaskService.SweepOverdue is
// the hook it calls on every user login.
package service
