// Package api holds the HTTP handlers of the task list service. Handlers
// decode and validate requests, call the service layer, and map service
// errors to status codes through HandleAPIError; they hold no business rules.
package api
