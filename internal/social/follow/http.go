// Copyright (c) 2026 Tsundoku. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package follow

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsundoku/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsundoku/internal/platform/request"
	"github.com/taibuivan/tsundoku/internal/platform/respond"
	"github.com/taibuivan/tsundoku/pkg/pagination"
)

// Handler implements the people directory and follow graph HTTP endpoints.
type Handler struct {
	followService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{followService: service}
}

// Routes returns a [chi.Router] for the /users resource.
//
// # Endpoints
//   - GET    /                    : People search by username substring.
//   - POST   /{username}/follow   : Follow the named user.
//   - DELETE /{username}/follow   : Unfollow the named user.
//   - PUT    /follow/{username}   : Flip the follow state (follow buttons).
//   - GET    /me/following        : Users the caller follows.
//   - GET    /me/followers        : Users following the caller.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.search)
	router.Post("/{username}/follow", handler.follow)
	router.Delete("/{username}/follow", handler.unfollow)
	router.Put("/follow/{username}", handler.toggle)
	router.Get("/me/following", handler.following)
	router.Get("/me/followers", handler.followers)

	return router
}

/*
search finds other readers by username substring.

GET /api/v1/users?q=<substring>

Response:
  - 200: []string: Matching usernames
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query().Get("q")

	usernames, err := handler.followService.SearchPeople(request.Context(), query, params.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if usernames == nil {
		usernames = []string{}
	}

	respond.OK(writer, usernames)
}

/*
follow creates a follow edge from the caller to the named user.

POST /api/v1/users/{username}/follow

Response:
  - 204: No Content: Edge exists after the call
  - 404: ErrNotFound: Unknown username
  - 422: ErrUnprocessable: Self-follow attempt
*/
func (handler *Handler) follow(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	username := requestutil.Param(request, "username")
	if err := handler.followService.Follow(request.Context(), userID, username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
unfollow removes the follow edge from the caller to the named user.

DELETE /api/v1/users/{username}/follow

Response:
  - 204: No Content: Edge absent after the call
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) unfollow(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	username := requestutil.Param(request, "username")
	if err := handler.followService.Unfollow(request.Context(), userID, username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
toggle flips the follow state between the caller and the named user.

PUT /api/v1/users/follow/{username}

Response:
  - 200: {"following": bool}: State after the flip
  - 404: ErrNotFound: Unknown username
  - 422: ErrUnprocessable: Self-follow attempt
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	username := requestutil.Param(request, "username")
	following, err := handler.followService.Toggle(request.Context(), userID, username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"following": following})
}

/*
following lists the users the caller follows.

GET /api/v1/users/me/following

Response:
  - 200: []Person
*/
func (handler *Handler) following(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	people, err := handler.followService.Following(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if people == nil {
		people = []Person{}
	}

	respond.OK(writer, people)
}

/*
followers lists the users following the caller.

GET /api/v1/users/me/followers

Response:
  - 200: []Person
*/
func (handler *Handler) followers(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	people, err := handler.followService.Followers(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if people == nil {
		people = []Person{}
	}

	respond.OK(writer, people)
}
