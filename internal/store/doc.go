// Package store defines the persistence contracts of the scheduler: word,
// session and progress repositories, plus the errors and transaction helper
// shared by every backend under internal/platform.
package store
