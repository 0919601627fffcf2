// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsundoku/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsundoku/internal/platform/request"
	"github.com/taibuivan/tsundoku/internal/platform/respond"
	"github.com/taibuivan/tsundoku/internal/platform/validate"
)

const maxReviewTextLength = 10000

// Handler implements the review and comment HTTP endpoints.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns a [chi.Router] for the /reviews resource.
//
// # Endpoints
//   - GET    /                    : Visible reviews; ?username= filters to one reader.
//   - POST   /                    : Create or replace the review for a book.
//   - GET    /{id}                : One review with its comment thread.
//   - PUT    /{id}                : Rewrite one owned review.
//   - DELETE /{id}                : Remove one owned review.
//   - GET    /{id}/comments       : The comment thread.
//   - POST   /{id}/comments       : Add a comment.
//   - DELETE /{id}/comments/{cid} : Remove a comment.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.post)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	router.Get("/{id}/comments", handler.listComments)
	router.Post("/{id}/comments", handler.addComment)
	router.Delete("/{id}/comments/{cid}", handler.removeComment)

	return router
}

type postRequest struct {
	BookID string `json:"book_id"`
	Text   string `json:"text"`
	Shared *bool  `json:"shared"`
}

type commentRequest struct {
	Text string `json:"text"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.reviewService.List(request.Context(), viewerID, request.URL.Query().Get("username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, records)
}

func (handler *Handler) post(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload postRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldBookID, payload.BookID).
		Required(FieldText, payload.Text).
		MaxLen(FieldText, payload.Text, maxReviewTextLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.reviewService.Post(request.Context(), actorID, PostInput{
		BookID: payload.BookID,
		Text:   payload.Text,
		Shared: payload.Shared,
	})
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

	record, err := handler.reviewService.Get(request.Context(), viewerID, requestutil.ID(request, "id"))
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

	var payload postRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, payload.Text).
		MaxLen(FieldText, payload.Text, maxReviewTextLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.reviewService.Update(request.Context(), actorID, requestutil.ID(request, "id"), UpdateInput{
		Text:   payload.Text,
		Shared: payload.Shared,
	})
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

	if err := handler.reviewService.Delete(request.Context(), actorID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.reviewService.Comments(request.Context(), viewerID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload commentRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, payload.Text).
		MaxLen(FieldText, payload.Text, maxReviewTextLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.AddComment(request.Context(), actorID, requestutil.ID(request, "id"), payload.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) removeComment(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.reviewService.DeleteComment(
		request.Context(), actorID,
		requestutil.ID(request, "id"), requestutil.ID(request, "cid"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
