// Package order implements the Order aggregate root and its stage state
// machine. An order moves through the fixed production sequence (Creation,
// Review, MaterialReservation, Sorting, Cutting, Packaging, Invoicing,
// Delivery) and ends in one of the terminal states Delivered or Cancelled.
//
// The aggregate also owns the pricing inputs (price per ton, cutting fees,
// discount, required weight) and the pricing-calculated flag: any input change
// invalidates a previously calculated total until the pricing service
// recomputes it.
//
// Stage transitions are gated by the use case layer (authority checks,
// mandatory handover); the aggregate enforces the ordering rules themselves:
// advance moves only to the immediate successor, skip moves only forward, and
// cancellation is possible from any non-terminal stage.
package order
