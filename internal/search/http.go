// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsundoku/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsundoku/internal/platform/request"
	"github.com/taibuivan/tsundoku/internal/platform/respond"
	"github.com/taibuivan/tsundoku/internal/platform/validate"
)

// Handler implements the book search HTTP endpoint.
type Handler struct {
	searchService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{searchService: service}
}

// Routes returns a [chi.Router] for the book search resource.
//
// # Endpoints
//   - GET / : Combined local and external search, ?q= required.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.search)

	return router
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query().Get("q")
	validator := &validate.Validator{}
	validator.Required("q", query).MaxLen("q", query, 200)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	results, err := handler.searchService.Search(request.Context(), viewerID, query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, results)
}
