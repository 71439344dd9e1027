// Package http exposes the workflow use cases over a JSON API built on echo.
// Handlers translate between wire representations and command/query objects;
// no business rule lives here.
package http

import (
	"net/http"

	"millflow/internal/core/application/usecases/commands"
	"millflow/internal/core/application/usecases/queries"
	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/core/domain/model/order"
	"millflow/internal/core/domain/model/processing"

	"github.com/labstack/echo/v4"
)

// Server routes HTTP requests to the application's command and query
// handlers.
type Server struct {
	createOrderHandler      commands.CreateOrderCommandHandler
	advanceStageHandler     commands.AdvanceStageCommandHandler
	skipStageHandler        commands.SkipStageCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	pricingHandler          commands.CalculateOrderPricingCommandHandler
	softDeleteOrderHandler  commands.SoftDeleteOrderCommandHandler
	restoreOrderHandler     commands.RestoreOrderCommandHandler
	requestTransferHandler  commands.RequestTransferCommandHandler
	approveTransferHandler  commands.ApproveTransferCommandHandler
	rejectTransferHandler   commands.RejectTransferCommandHandler
	requestHandoverHandler  commands.RequestHandoverCommandHandler
	confirmHandoverHandler  commands.ConfirmHandoverCommandHandler
	recordSortingHandler    commands.RecordSortingResultCommandHandler
	approveSortingHandler   commands.ApproveSortingCommandHandler
	completeSortingHandler  commands.CompleteSortingTransferCommandHandler
	pendingTransfersHandler queries.GetPendingTransfersQueryHandler
	processingRecordHandler queries.GetProcessingRecordQueryHandler
	auditTrailHandler       queries.GetAuditTrailQueryHandler
}

// NewServer creates the HTTP server over the given handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceStageHandler commands.AdvanceStageCommandHandler,
	skipStageHandler commands.SkipStageCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	pricingHandler commands.CalculateOrderPricingCommandHandler,
	softDeleteOrderHandler commands.SoftDeleteOrderCommandHandler,
	restoreOrderHandler commands.RestoreOrderCommandHandler,
	requestTransferHandler commands.RequestTransferCommandHandler,
	approveTransferHandler commands.ApproveTransferCommandHandler,
	rejectTransferHandler commands.RejectTransferCommandHandler,
	requestHandoverHandler commands.RequestHandoverCommandHandler,
	confirmHandoverHandler commands.ConfirmHandoverCommandHandler,
	recordSortingHandler commands.RecordSortingResultCommandHandler,
	approveSortingHandler commands.ApproveSortingCommandHandler,
	completeSortingHandler commands.CompleteSortingTransferCommandHandler,
	pendingTransfersHandler queries.GetPendingTransfersQueryHandler,
	processingRecordHandler queries.GetProcessingRecordQueryHandler,
	auditTrailHandler queries.GetAuditTrailQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		advanceStageHandler:     advanceStageHandler,
		skipStageHandler:        skipStageHandler,
		cancelOrderHandler:      cancelOrderHandler,
		pricingHandler:          pricingHandler,
		softDeleteOrderHandler:  softDeleteOrderHandler,
		restoreOrderHandler:     restoreOrderHandler,
		requestTransferHandler:  requestTransferHandler,
		approveTransferHandler:  approveTransferHandler,
		rejectTransferHandler:   rejectTransferHandler,
		requestHandoverHandler:  requestHandoverHandler,
		confirmHandoverHandler:  confirmHandoverHandler,
		recordSortingHandler:    recordSortingHandler,
		approveSortingHandler:   approveSortingHandler,
		completeSortingHandler:  completeSortingHandler,
		pendingTransfersHandler: pendingTransfersHandler,
		processingRecordHandler: processingRecordHandler,
		auditTrailHandler:       auditTrailHandler,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", ActorMiddleware())

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderID/advance", s.AdvanceStage)
	api.POST("/orders/:orderID/skip", s.SkipStage)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/pricing", s.CalculatePricing)
	api.DELETE("/orders/:orderID", s.SoftDeleteOrder)
	api.POST("/orders/:orderID/restore", s.RestoreOrder)
	api.GET("/orders/:orderID/stages/:stage", s.GetProcessingRecord)
	api.GET("/orders/:orderID/transfers/pending", s.GetPendingTransfers)

	api.POST("/transfers", s.RequestTransfer)
	api.POST("/transfers/:transferID/approve", s.ApproveTransfer)
	api.POST("/transfers/:transferID/reject", s.RejectTransfer)

	api.POST("/records/:recordID/handover/request", s.RequestHandover)
	api.POST("/records/:recordID/handover/confirm", s.ConfirmHandover)
	api.POST("/records/:recordID/sorting/result", s.RecordSortingResult)
	api.POST("/records/:recordID/sorting/approve", s.ApproveSorting)
	api.POST("/records/:recordID/sorting/complete", s.CompleteSortingTransfer)

	api.GET("/audit/:subjectType/:subjectID", s.GetAuditTrail)
}

type createOrderRequest struct {
	OrderType        string  `json:"order_type"`
	RequiredWeightKg float64 `json:"required_weight_kg"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderType, err := order.TypeFromString(req.OrderType)
	if err != nil {
		return writeError(ctx, err)
	}

	requiredWeight, err := kernel.NewWeight(req.RequiredWeightKg)
	if err != nil {
		return writeError(ctx, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, orderType, requiredWeight, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"order_id": id.String()})
}

type stageTransitionRequest struct {
	TargetStage string `json:"target_stage"`
	Reason      string `json:"reason,omitempty"`
}

// AdvanceStage handles POST /api/v1/orders/:orderID/advance.
func (s *Server) AdvanceStage(ctx echo.Context) error {
	var req stageTransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, actor, err := pathIDAndActor(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	targetStage, err := order.StageFromString(req.TargetStage)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceStageCommand(orderID, targetStage, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.advanceStageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SkipStage handles POST /api/v1/orders/:orderID/skip.
func (s *Server) SkipStage(ctx echo.Context) error {
	var req stageTransitionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, actor, err := pathIDAndActor(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	targetStage, err := order.StageFromString(req.TargetStage)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSkipStageCommand(orderID, targetStage, req.Reason, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.skipStageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	var req reasonRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, actor, err := pathIDAndActor(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type pricingRequest struct {
	PricePerTon float64 `json:"price_per_ton"`
	CuttingFees float64 `json:"cutting_fees"`
	Discount    float64 `json:"discount"`
}

// CalculatePricing handles POST /api/v1/orders/:orderID/pricing.
func (s *Server) CalculatePricing(ctx echo.Context) error {
	var req pricingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, actor, err := pathIDAndActor(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCalculateOrderPricingCommand(
		orderID, req.PricePerTon, req.CuttingFees, req.Discount, actor,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.pricingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SoftDeleteOrder handles DELETE /api/v1/orders/:orderID.
func (s *Server) SoftDeleteOrder(ctx echo.Context) error {
	orderID, actor, err := pathIDAndActor(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSoftDeleteOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.softDeleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RestoreOrder handles POST /api/v1/orders/:orderID/restore.
func (s *Server) RestoreOrder(ctx echo.Context) error {
	orderID, actor, err := pathIDAndActor(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRestoreOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.restoreOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type requestTransferRequest struct {
	OrderID  string  `json:"order_id"`
	ToStage  string  `json:"to_stage"`
	WeightKg float64 `json:"weight_kg"`
}

// RequestTransfer handles POST /api/v1/transfers.
func (s *Server) RequestTransfer(ctx echo.Context) error {
	var req requestTransferRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	toStage, err := order.StageFromString(req.ToStage)
	if err != nil {
		return writeError(ctx, err)
	}

	weight, err := kernel.NewWeight(req.WeightKg)
	if err != nil {
		return writeError(ctx, err)
	}

	transferID := kernel.NewUUID()
	cmd, err := commands.NewRequestTransferCommand(transferID, orderID, toStage, weight, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.requestTransferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"transfer_id": transferID.String()})
}

// ApproveTransfer handles POST /api/v1/transfers/:transferID/approve.
func (s *Server) ApproveTransfer(ctx echo.Context) error {
	transferID, actor, err := pathIDAndActor(ctx, "transferID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewApproveTransferCommand(transferID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.approveTransferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectTransfer handles POST /api/v1/transfers/:transferID/reject.
func (s *Server) RejectTransfer(ctx echo.Context) error {
	var req reasonRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	transferID, actor, err := pathIDAndActor(ctx, "transferID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRejectTransferCommand(transferID, actor, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.rejectTransferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestHandover handles POST /api/v1/records/:recordID/handover/request.
func (s *Server) RequestHandover(ctx echo.Context) error {
	recordID, actor, err := pathIDAndActor(ctx, "recordID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRequestHandoverCommand(recordID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.requestHandoverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmHandover handles POST /api/v1/records/:recordID/handover/confirm.
func (s *Server) ConfirmHandover(ctx echo.Context) error {
	recordID, actor, err := pathIDAndActor(ctx, "recordID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmHandoverCommand(recordID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.confirmHandoverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type rollPayload struct {
	WeightKg float64 `json:"weight_kg"`
	WidthMm  float64 `json:"width_mm"`
	Location string  `json:"location"`
}

type sortingResultRequest struct {
	Roll1         rollPayload `json:"roll1"`
	Roll2         rollPayload `json:"roll2"`
	WasteWeightKg float64     `json:"waste_weight_kg"`
}

// RecordSortingResult handles POST /api/v1/records/:recordID/sorting/result.
func (s *Server) RecordSortingResult(ctx echo.Context) error {
	var req sortingResultRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	recordID, actor, err := pathIDAndActor(ctx, "recordID")
	if err != nil {
		return writeError(ctx, err)
	}

	roll1, err := rollFromPayload(req.Roll1)
	if err != nil {
		return writeError(ctx, err)
	}
	roll2, err := rollFromPayload(req.Roll2)
	if err != nil {
		return writeError(ctx, err)
	}

	wasteWeight, err := kernel.NewWeight(req.WasteWeightKg)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRecordSortingResultCommand(recordID, roll1, roll2, wasteWeight, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.recordSortingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApproveSorting handles POST /api/v1/records/:recordID/sorting/approve.
// A conservation deviation within operational bounds does not block the
// approval; it is returned as a warning.
func (s *Server) ApproveSorting(ctx echo.Context) error {
	recordID, actor, err := pathIDAndActor(ctx, "recordID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewApproveSortingCommand(recordID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	warning, err := s.approveSortingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	if warning == "" {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"warning": warning})
}

type completeSortingRequest struct {
	Destination string `json:"destination"`
	WarehouseID string `json:"warehouse_id,omitempty"`
}

// CompleteSortingTransfer handles POST /api/v1/records/:recordID/sorting/complete.
func (s *Server) CompleteSortingTransfer(ctx echo.Context) error {
	var req completeSortingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	recordID, actor, err := pathIDAndActor(ctx, "recordID")
	if err != nil {
		return writeError(ctx, err)
	}

	destination, err := processing.DestinationFromString(req.Destination)
	if err != nil {
		return writeError(ctx, err)
	}

	var warehouseID *kernel.UUID
	if req.WarehouseID != "" {
		id, idErr := kernel.UUIDFromString(req.WarehouseID)
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		warehouseID = &id
	}

	cmd, err := commands.NewCompleteSortingTransferCommand(recordID, destination, warehouseID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.completeSortingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPendingTransfers handles GET /api/v1/orders/:orderID/transfers/pending.
// An optional to_stage query parameter narrows the result to one receiving
// stage.
func (s *Server) GetPendingTransfers(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	toStage := order.StageUnknown
	if raw := ctx.QueryParam("to_stage"); raw != "" {
		toStage, err = order.StageFromString(raw)
		if err != nil {
			return writeError(ctx, err)
		}
	}

	query, err := queries.NewGetPendingTransfersQuery(orderID, toStage)
	if err != nil {
		return writeError(ctx, err)
	}

	transfers, err := s.pendingTransfersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, transfers)
}

// GetProcessingRecord handles GET /api/v1/orders/:orderID/stages/:stage.
func (s *Server) GetProcessingRecord(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	stage, err := order.StageFromString(ctx.Param("stage"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetProcessingRecordQuery(orderID, stage)
	if err != nil {
		return writeError(ctx, err)
	}

	record, err := s.processingRecordHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, record)
}

// GetAuditTrail handles GET /api/v1/audit/:subjectType/:subjectID.
func (s *Server) GetAuditTrail(ctx echo.Context) error {
	query, err := queries.NewGetAuditTrailQuery(ctx.Param("subjectType"), ctx.Param("subjectID"))
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.auditTrailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, entries)
}

func rollFromPayload(p rollPayload) (processing.Roll, error) {
	weight, err := kernel.NewWeight(p.WeightKg)
	if err != nil {
		return processing.Roll{}, err
	}

	return processing.Roll{
		Weight:   weight,
		Width:    p.WidthMm,
		Location: p.Location,
	}, nil
}

func pathIDAndActor(ctx echo.Context, param string) (kernel.UUID, kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(param))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	actor, err := actorID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	return id, actor, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
