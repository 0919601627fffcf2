// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsundoku/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsundoku/internal/platform/request"
	"github.com/taibuivan/tsundoku/internal/platform/respond"
	"github.com/taibuivan/tsundoku/internal/platform/validate"
	"github.com/taibuivan/tsundoku/pkg/query"
)

// Handler implements the reading progress HTTP endpoints.
type Handler struct {
	progressService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{progressService: service}
}

// Routes returns a [chi.Router] for the /reading resource.
//
// # Endpoints
//   - GET    /      : Visible records; ?username= filters to one reader,
//     ?status= takes a comma separated status list.
//   - POST   /      : Create or replace the record for a book.
//   - GET    /{id}  : One record, if visible.
//   - PUT    /{id}  : Rewrite one owned record.
//   - DELETE /{id}  : Remove one owned record.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.track)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

type trackRequest struct {
	BookID      string `json:"book_id"`
	Status      string `json:"status"`
	CurrentPage int    `json:"current_page"`
	Shared      *bool  `json:"shared"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	statuses := query.StringSlice(request.URL.Query().Get("status"))
	records, err := handler.progressService.List(request.Context(), viewerID, request.URL.Query().Get("username"), statuses)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, records)
}

func (handler *Handler) track(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeTrackRequest(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.progressService.Track(request.Context(), actorID, *input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.progressService.Get(request.Context(), viewerID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeTrackRequest(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.progressService.Update(request.Context(), actorID, requestutil.ID(request, "id"), *input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.progressService.Delete(request.Context(), actorID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// decodeTrackRequest parses and validates a progress payload. The book ID
// is only required on creation.
func decodeTrackRequest(request *http.Request, requireBook bool) (*TrackInput, error) {
	var input trackRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return nil, validate.ErrInvalidJSON
	}

	validator := &validate.Validator{}
	if requireBook {
		validator.Required(FieldBookID, input.BookID)
	}
	validator.Required(FieldStatus, input.Status).
		OneOf(FieldStatus, input.Status, Statuses...).
		Custom(FieldCurrentPage, input.CurrentPage < 0, "must be zero or positive")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &TrackInput{
		BookID:      input.BookID,
		Status:      input.Status,
		CurrentPage: input.CurrentPage,
		Shared:      input.Shared,
	}, nil
}
