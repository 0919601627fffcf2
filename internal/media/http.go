// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsundoku/internal/platform/apperr"
	"github.com/taibuivan/tsundoku/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsundoku/internal/platform/request"
	"github.com/taibuivan/tsundoku/internal/platform/respond"
	"github.com/taibuivan/tsundoku/pkg/pointer"
)

// Handler implements the image upload HTTP endpoint.
type Handler struct {
	mediaService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{mediaService: service}
}

// Routes returns a [chi.Router] for the /upload resource.
//
// # Endpoints
//   - POST / : Multipart image upload targeting a book or a shelf.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.upload)

	return router
}

func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, MaxUploadBytes+4096)
	if err := request.ParseMultipartForm(MaxUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart form."))
		return
	}

	file, header, err := request.FormFile(FieldImage)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("An image file is required."))
		return
	}
	defer file.Close()

	input := UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   header.Size,
		Content:     file,
	}
	if value := request.FormValue(FieldBookID); value != "" {
		input.BookID = pointer.To(value)
	}
	if value := request.FormValue(FieldShelfID); value != "" {
		input.ShelfID = pointer.To(value)
	}

	asset, err := handler.mediaService.Upload(request.Context(), actorID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, asset)
}
