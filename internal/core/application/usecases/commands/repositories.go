// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// domain mutation, audit recording, and persistence.
package commands

import (
	"context"

	"millflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler declares the narrowest combination it needs; the concrete unit
// of work satisfies all of them.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProcessingRepoFactory provides access to the processing repository within a transaction.
	ProcessingRepoFactory interface {
		ProcessingRepository() ports.ProcessingRepository
	}

	// TransferRepoFactory provides access to the transfer repository within a transaction.
	TransferRepoFactory interface {
		TransferRepository() ports.TransferRepository
	}

	// AuditRepoFactory provides access to the audit log repository within a transaction.
	// Every mutating handler writes its audit entry through the same transaction
	// as the business change.
	AuditRepoFactory interface {
		AuditLogRepository() ports.AuditLogRepository
	}

	// OrderUoW manages transactions for order-only operations
	// (pricing, soft delete, restore).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ProcessingUoW manages transactions for single-record operations
	// (handover, sorting).
	ProcessingUoW interface {
		TxManager
		ProcessingRepoFactory
		AuditRepoFactory
	}

	// ProcessingUoWFactory creates new processing unit of work instances.
	ProcessingUoWFactory interface {
		Create() ProcessingUoW
	}

	// OrderProcessingUoW manages transactions spanning an order and its
	// processing records (creation, stage transitions, cancellation).
	OrderProcessingUoW interface {
		TxManager
		OrderRepoFactory
		ProcessingRepoFactory
		AuditRepoFactory
	}

	// OrderProcessingUoWFactory creates new order+processing unit of work instances.
	OrderProcessingUoWFactory interface {
		Create() OrderProcessingUoW
	}

	// TransferUoW manages transactions for the weight transfer operations,
	// which touch the transfer, the order, and both processing records.
	TransferUoW interface {
		TxManager
		TransferRepoFactory
		OrderRepoFactory
		ProcessingRepoFactory
		AuditRepoFactory
	}

	// TransferUoWFactory creates new transfer unit of work instances.
	TransferUoWFactory interface {
		Create() TransferUoW
	}
)
