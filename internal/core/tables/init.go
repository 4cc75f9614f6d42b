// Package tables registers the sample sales entities and their option
// lists with the core registry. Import this package to ensure all
// entities are registered.
package tables

// Each file uses init() to register its entities.
