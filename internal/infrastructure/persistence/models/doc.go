// Package models contains the GORM persistence models. Domain entities stay
// free of ORM tags; each model converts with ToDomain and a FromDomain
// constructor, and repositories only ever hand domain types to callers.
package models
