// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsundoku/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsundoku/internal/platform/request"
	"github.com/taibuivan/tsundoku/internal/platform/respond"
	"github.com/taibuivan/tsundoku/internal/platform/validate"
)

// Handler implements the sharing preferences HTTP endpoints.
type Handler struct {
	settingsService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{settingsService: service}
}

// Routes returns a [chi.Router] for the /settings resource.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.get)
	router.Put("/", handler.update)

	return router
}

type updateRequest struct {
	ShareAllReviews         bool `json:"share_all_reviews"`
	ShareAllReadingProgress bool `json:"share_all_reading_progress"`
}

/*
get returns the caller's sharing defaults.

GET /api/v1/settings

Response:
  - 200: Settings: Stored or implicit defaults
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stored, err := handler.settingsService.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stored)
}

/*
update replaces the caller's sharing defaults.

PUT /api/v1/settings

Response:
  - 200: Settings: State after the write
  - 400: ErrInvalidJSON: Malformed body
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated, err := handler.settingsService.Update(request.Context(), userID, UpdateInput{
		ShareAllReviews:         input.ShareAllReviews,
		ShareAllReadingProgress: input.ShareAllReadingProgress,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}
