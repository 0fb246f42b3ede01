// Package billing provides the domain model for rent and utility billing of rental rooms.
//
// This package implements the billing bounded context, which is responsible for:
//   - Resolving anniversary-based billing periods from a tenant's move-in date
//   - Calculating itemized rent, utility and fixed-fee charges
//   - Tracking the payment lifecycle of each billing period (unpaid, partial, paid, overdue)
//   - Classifying payment records for due-date reminders
//
// Key Aggregates:
//   - PaymentRecord: One billing period's charge and its payment state
//
// Value Objects:
//   - RoomConfiguration: Read-only pricing and occupancy of a room
//   - TenantAssignment: Move-in date and payment due day of the room's current tenant
//   - BillingPeriod: Start, end and due date of one anniversary cycle
//   - ChargeBreakdown: Itemized amounts of a bill
//
// Overdue is never authoritative in storage. It is derived from the due date each time a
// record is read (see PaymentRecord.EffectiveStatus).
package billing
