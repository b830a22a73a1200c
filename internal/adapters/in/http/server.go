// Package http exposes the tracking core's synchronous surface as an echo
// server. Handlers translate transport payloads into commands and queries,
// and map the error taxonomy onto HTTP status codes: not-found to 404,
// validation and invalid transitions to 400, identifier collisions to 409,
// collaborator outages to 502, everything else to 500.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cargotrack/internal/core/application/usecases/commands"
	"cargotrack/internal/core/application/usecases/queries"
	"cargotrack/internal/core/domain/model/batch"
	"cargotrack/internal/core/domain/model/delivery"
	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/core/domain/services"
	"cargotrack/internal/pkg/errs"
	"cargotrack/internal/pkg/paging"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createBatchHandler    commands.CreateBatchCommandHandler
	assignDeliveryHandler commands.AssignDeliveryCommandHandler
	markPickedUpHandler   commands.MarkPickedUpCommandHandler
	markDeliveredHandler  commands.MarkDeliveredCommandHandler
	markFailedHandler     commands.MarkFailedCommandHandler
	checkInItemHandler    commands.CheckInItemCommandHandler

	// Query handlers
	getBatchHandler       queries.GetBatchQueryHandler
	listBatchItemsHandler queries.ListBatchItemsQueryHandler
	listItemsHandler      queries.ListItemsQueryHandler
	getItemHandler        queries.GetItemQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createBatchHandler commands.CreateBatchCommandHandler,
	assignDeliveryHandler commands.AssignDeliveryCommandHandler,
	markPickedUpHandler commands.MarkPickedUpCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	markFailedHandler commands.MarkFailedCommandHandler,
	checkInItemHandler commands.CheckInItemCommandHandler,
	getBatchHandler queries.GetBatchQueryHandler,
	listBatchItemsHandler queries.ListBatchItemsQueryHandler,
	listItemsHandler queries.ListItemsQueryHandler,
	getItemHandler queries.GetItemQueryHandler,
) *Server {
	return &Server{
		createBatchHandler:    createBatchHandler,
		assignDeliveryHandler: assignDeliveryHandler,
		markPickedUpHandler:   markPickedUpHandler,
		markDeliveredHandler:  markDeliveredHandler,
		markFailedHandler:     markFailedHandler,
		checkInItemHandler:    checkInItemHandler,
		getBatchHandler:       getBatchHandler,
		listBatchItemsHandler: listBatchItemsHandler,
		listItemsHandler:      listItemsHandler,
		getItemHandler:        getItemHandler,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/batches", s.CreateBatch)
	api.GET("/batches/:batchId", s.GetBatch)
	api.GET("/batches/:batchId/items", s.ListBatchItems)

	api.GET("/items", s.ListItems)
	api.GET("/items/:itemId", s.GetItem)
	api.POST("/items/:itemId/check-in", s.CheckInItem)

	api.POST("/deliveries", s.AssignDelivery)
	api.POST("/deliveries/:deliveryId/pickup", s.MarkPickedUp)
	api.POST("/deliveries/:deliveryId/delivered", s.MarkDelivered)
	api.POST("/deliveries/:deliveryId/failed", s.MarkFailed)

	e.GET("/health", s.Health)
}

// ErrorResponse is the wire shape of every error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ManifestRecord is one uploaded manifest row.
type ManifestRecord struct {
	ApplicantName  string `json:"applicantName"`
	ApplicantPhone string `json:"applicantPhone"`
	ApplicantEmail string `json:"applicantEmail"`
	Address        string `json:"address"`
	State          string `json:"state"`
	LGA            string `json:"lga"`
}

// CreateBatchRequest is the body of POST /api/v1/batches.
type CreateBatchRequest struct {
	ClientID    string           `json:"clientId"`
	UploadedBy  string           `json:"uploadedBy"`
	Description string           `json:"description"`
	Records     []ManifestRecord `json:"records"`
}

// BatchResponse is the wire shape of one batch.
type BatchResponse struct {
	BatchID     string    `json:"batchId"`
	BatchNumber string    `json:"batchNumber"`
	ClientID    string    `json:"clientId"`
	TotalItems  int       `json:"totalItems"`
	UploadedBy  string    `json:"uploadedBy"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// ItemResponse is the wire shape of one item. ApplicantPhone and
// ApplicantEmail are exposed because the notification dispatcher resolves
// contact details through this surface.
type ItemResponse struct {
	ItemID               string     `json:"itemId"`
	BatchID              string     `json:"batchId"`
	ItemNumber           string     `json:"itemNumber"`
	QRCode               string     `json:"qrCode"`
	ApplicantName        string     `json:"applicantName"`
	ApplicantPhone       string     `json:"applicantPhone"`
	ApplicantEmail       string     `json:"applicantEmail"`
	Address              string     `json:"address"`
	State                string     `json:"state"`
	LGA                  string     `json:"lga"`
	Status               string     `json:"status"`
	RiderID              *string    `json:"riderId,omitempty"`
	HubID                *string    `json:"hubId,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	DispatchedAt         *time.Time `json:"dispatchedAt,omitempty"`
	DeliveredAt          *time.Time `json:"deliveredAt,omitempty"`
	EstimatedDeliveredAt *time.Time `json:"estimatedDeliveredAt,omitempty"`
}

// ItemPageResponse is one page of items with paging metadata.
type ItemPageResponse struct {
	Items        []ItemResponse `json:"items"`
	CurrentPage  int            `json:"currentPage"`
	PageSize     int            `json:"pageSize"`
	TotalRecords int            `json:"totalRecords"`
	TotalPages   int            `json:"totalPages"`
}

// AssignDeliveryRequest is the body of POST /api/v1/deliveries.
type AssignDeliveryRequest struct {
	ItemID  string `json:"itemId"`
	RiderID string `json:"riderId"`
}

// CheckInRequest is the body of POST /api/v1/items/:itemId/check-in.
type CheckInRequest struct {
	HubID string `json:"hubId"`
}

// MarkDeliveredRequest is the body of POST /api/v1/deliveries/:deliveryId/delivered.
type MarkDeliveredRequest struct {
	GPSLocation   string `json:"gpsLocation"`
	RecipientName string `json:"recipientName"`
	Signature     []byte `json:"signature,omitempty"`
	Photo         []byte `json:"photo,omitempty"`
}

// MarkFailedRequest is the body of POST /api/v1/deliveries/:deliveryId/failed.
type MarkFailedRequest struct {
	Reason string `json:"reason"`
}

// ProofOfDeliveryResponse is the wire shape of captured delivery evidence.
type ProofOfDeliveryResponse struct {
	GPSLocation   string    `json:"gpsLocation"`
	RecipientName string    `json:"recipientName"`
	Signature     []byte    `json:"signature,omitempty"`
	Photo         []byte    `json:"photo,omitempty"`
	CapturedAt    time.Time `json:"capturedAt"`
}

// DeliveryResponse is the wire shape of one delivery.
type DeliveryResponse struct {
	DeliveryID    string                   `json:"deliveryId"`
	ItemID        string                   `json:"itemId"`
	RiderID       string                   `json:"riderId"`
	Status        string                   `json:"status"`
	AssignedAt    time.Time                `json:"assignedAt"`
	PickedUpAt    *time.Time               `json:"pickedUpAt,omitempty"`
	DeliveredAt   *time.Time               `json:"deliveredAt,omitempty"`
	Proof         *ProofOfDeliveryResponse `json:"proof,omitempty"`
	FailureReason string                   `json:"failureReason,omitempty"`
}

// CreateBatch handles POST /api/v1/batches - ingests an uploaded manifest.
func (s *Server) CreateBatch(ctx echo.Context) error {
	var request CreateBatchRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	records := make([]services.RawItemRecord, len(request.Records))
	for i, record := range request.Records {
		records[i] = services.RawItemRecord{
			ApplicantName:  record.ApplicantName,
			ApplicantPhone: record.ApplicantPhone,
			ApplicantEmail: record.ApplicantEmail,
			Address:        record.Address,
			State:          record.State,
			LGA:            record.LGA,
		}
	}

	cmd, err := commands.NewCreateBatchCommand(request.ClientID, request.UploadedBy, request.Description, records)
	if err != nil {
		return badRequest(ctx, "Invalid batch data: "+err.Error())
	}

	createdBatch, err := s.createBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toBatchResponse(createdBatch))
}

// GetBatch handles GET /api/v1/batches/:batchId.
func (s *Server) GetBatch(ctx echo.Context) error {
	batchID, err := kernel.UUIDFromString(ctx.Param("batchId"))
	if err != nil {
		return badRequest(ctx, "Invalid batch id")
	}

	query, err := queries.NewGetBatchQuery(batchID)
	if err != nil {
		return badRequest(ctx, "Invalid batch id")
	}

	resp, err := s.getBatchHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BatchResponse{
		BatchID:     resp.ID.String(),
		BatchNumber: resp.BatchNumber,
		ClientID:    resp.ClientID,
		TotalItems:  resp.TotalItems,
		UploadedBy:  resp.UploadedBy,
		Status:      resp.Status,
		Description: resp.Description,
		UploadedAt:  resp.UploadedAt,
	})
}

// ListBatchItems handles GET /api/v1/batches/:batchId/items.
func (s *Server) ListBatchItems(ctx echo.Context) error {
	batchID, err := kernel.UUIDFromString(ctx.Param("batchId"))
	if err != nil {
		return badRequest(ctx, "Invalid batch id")
	}

	pageNumber, pageSize := pagingParams(ctx)

	query, err := queries.NewListBatchItemsQuery(batchID, pageNumber, pageSize, ctx.QueryParam("sort"))
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	page, err := s.listBatchItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toItemPageResponse(page))
}

// ListItems handles GET /api/v1/items with optional status and state filters.
func (s *Server) ListItems(ctx echo.Context) error {
	pageNumber, pageSize := pagingParams(ctx)

	query, err := queries.NewListItemsQuery(
		ctx.QueryParam("status"),
		ctx.QueryParam("state"),
		pageNumber,
		pageSize,
		ctx.QueryParam("sort"),
	)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	page, err := s.listItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toItemPageResponse(page))
}

// GetItem handles GET /api/v1/items/:itemId.
func (s *Server) GetItem(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	query, err := queries.NewGetItemQuery(itemID)
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	view, err := s.getItemHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toItemResponse(view))
}

// CheckInItem handles POST /api/v1/items/:itemId/check-in.
func (s *Server) CheckInItem(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var request CheckInRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCheckInItemCommand(itemID, request.HubID)
	if err != nil {
		return badRequest(ctx, "Invalid check-in data: "+err.Error())
	}

	checkedIn, err := s.checkInItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"itemId": checkedIn.ID().String(),
		"status": checkedIn.Status().String(),
	})
}

// AssignDelivery handles POST /api/v1/deliveries.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	var request AssignDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	itemID, err := kernel.UUIDFromString(request.ItemID)
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	cmd, err := commands.NewAssignDeliveryCommand(itemID, request.RiderID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	assigned, err := s.assignDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toDeliveryResponse(assigned))
}

// MarkPickedUp handles POST /api/v1/deliveries/:deliveryId/pickup.
func (s *Server) MarkPickedUp(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	cmd, err := commands.NewMarkPickedUpCommand(deliveryID)
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	pickedUp, err := s.markPickedUpHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryResponse(pickedUp))
}

// MarkDelivered handles POST /api/v1/deliveries/:deliveryId/delivered.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var request MarkDeliveredRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkDeliveredCommand(deliveryID, commands.ProofOfDeliveryInput{
		Signature:     request.Signature,
		Photo:         request.Photo,
		GPSLocation:   request.GPSLocation,
		RecipientName: request.RecipientName,
	})
	if err != nil {
		return badRequest(ctx, "Invalid proof of delivery: "+err.Error())
	}

	delivered, err := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryResponse(delivered))
}

// MarkFailed handles POST /api/v1/deliveries/:deliveryId/failed.
func (s *Server) MarkFailed(ctx echo.Context) error {
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	var request MarkFailedRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkFailedCommand(deliveryID, request.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid failure data: "+err.Error())
	}

	failed, err := s.markFailedHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDeliveryResponse(failed))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func pagingParams(ctx echo.Context) (pageNumber, pageSize int) {
	pageNumber = 1
	if raw := ctx.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			pageNumber = parsed
		}
	}
	if raw := ctx.QueryParam("pageSize"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			pageSize = parsed
		}
	}
	return pageNumber, pageSize
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps handler errors onto the HTTP status codes of the
// synchronous surface.
func respondError(ctx echo.Context, err error) error {
	var code int

	switch {
	case errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, commands.ErrRiderNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrDuplicateIdentifier) || errors.Is(err, commands.ErrDeliveryAlreadyActive):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrDependencyUnavailable):
		code = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrInvalidTransition) ||
		errors.Is(err, commands.ErrEmptyBatch):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}

	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}

func toBatchResponse(created *batch.Batch) BatchResponse {
	return BatchResponse{
		BatchID:     created.ID().String(),
		BatchNumber: created.Number().String(),
		ClientID:    created.ClientID(),
		TotalItems:  created.TotalItems(),
		UploadedBy:  created.UploadedBy(),
		Status:      created.Status().String(),
		Description: created.Description(),
		UploadedAt:  created.UploadedAt(),
	}
}

func toItemResponse(view queries.ItemView) ItemResponse {
	return ItemResponse{
		ItemID:               view.ID.String(),
		BatchID:              view.BatchID.String(),
		ItemNumber:           view.ItemNumber,
		QRCode:               view.QRCode,
		ApplicantName:        view.ApplicantName,
		ApplicantPhone:       view.ApplicantPhone,
		ApplicantEmail:       view.ApplicantEmail,
		Address:              view.Address,
		State:                view.State,
		LGA:                  view.LGA,
		Status:               view.Status,
		RiderID:              view.RiderID,
		HubID:                view.HubID,
		CreatedAt:            view.CreatedAt,
		DispatchedAt:         view.DispatchedAt,
		DeliveredAt:          view.DeliveredAt,
		EstimatedDeliveredAt: view.EstimatedDeliveredAt,
	}
}

func toItemPageResponse(page paging.Result[queries.ItemView]) ItemPageResponse {
	items := make([]ItemResponse, len(page.Items))
	for i, view := range page.Items {
		items[i] = toItemResponse(view)
	}

	return ItemPageResponse{
		Items:        items,
		CurrentPage:  page.CurrentPage,
		PageSize:     page.PageSize,
		TotalRecords: page.TotalRecords,
		TotalPages:   page.TotalPages,
	}
}

func toDeliveryResponse(d *delivery.Delivery) DeliveryResponse {
	resp := DeliveryResponse{
		DeliveryID:    d.ID().String(),
		ItemID:        d.ItemID().String(),
		RiderID:       d.RiderID(),
		Status:        d.Status().String(),
		AssignedAt:    d.AssignedAt(),
		PickedUpAt:    d.PickedUpAt(),
		DeliveredAt:   d.DeliveredAt(),
		FailureReason: d.FailureReason(),
	}

	if proof := d.Proof(); proof != nil {
		resp.Proof = &ProofOfDeliveryResponse{
			GPSLocation:   proof.GPSLocation(),
			RecipientName: proof.RecipientName(),
			Signature:     proof.Signature(),
			Photo:         proof.Photo(),
			CapturedAt:    proof.CapturedAt(),
		}
	}

	return resp
}
