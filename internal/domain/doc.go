// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, admins, tags, tasks and the
// authenticated principal. It is independent of any specific infrastructure
// or delivery mechanism.
package domain
