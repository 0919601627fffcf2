// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsundoku/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsundoku/internal/platform/request"
	"github.com/taibuivan/tsundoku/internal/platform/respond"
	"github.com/taibuivan/tsundoku/internal/platform/validate"
)

// Handler implements the book catalog HTTP endpoints.
type Handler struct {
	bookService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{bookService: service}
}

// Routes returns a [chi.Router] for the /books resource.
//
// # Endpoints
//   - GET    /      : The viewer's catalog; ?username= lists another reader's.
//   - POST   /      : Add a book.
//   - GET    /{id}  : One book with its visible attachments.
//   - PUT    /{id}  : Rewrite one owned book.
//   - DELETE /{id}  : Remove one owned book.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

type bookRequest struct {
	ShelfID     *string `json:"shelf_id"`
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	TotalPages  *int    `json:"total_pages"`
	ReleaseYear *int    `json:"release_year"`
	ImageURL    string  `json:"image_url"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.bookService.List(request.Context(), viewerID, request.URL.Query().Get("username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, records)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeBookRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.bookService.Create(request.Context(), actorID, *input)
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

	detail, err := handler.bookService.Get(request.Context(), viewerID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeBookRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.bookService.Update(request.Context(), actorID, requestutil.ID(request, "id"), *input)
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

	if err := handler.bookService.Delete(request.Context(), actorID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func decodeBookRequest(request *http.Request) (*Input, error) {
	var payload bookRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		return nil, validate.ErrInvalidJSON
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, payload.Title).
		MaxLen(FieldTitle, payload.Title, 500).
		Required(FieldAuthor, payload.Author).
		MaxLen(FieldAuthor, payload.Author, 200).
		MaxLen(FieldISBN, payload.ISBN, 17).
		Custom(FieldTotalPages, payload.TotalPages != nil && *payload.TotalPages <= 0, "must be positive").
		Custom(FieldReleaseYear, payload.ReleaseYear != nil && (*payload.ReleaseYear < 0 || *payload.ReleaseYear > time.Now().Year()+1), "must be a plausible year")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &Input{
		ShelfID:     payload.ShelfID,
		ISBN:        payload.ISBN,
		Title:       payload.Title,
		Author:      payload.Author,
		TotalPages:  payload.TotalPages,
		ReleaseYear: payload.ReleaseYear,
		ImageURL:    payload.ImageURL,
	}, nil
}
