// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free of ORM concerns.
//
// Structure:
//   - base.go: base persistence models (BaseModel, AggregateModel, OwnedAggregateModel)
//   - billing.go: properties, rooms and payment records
package models
