package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dkurbatov/goblog/internal/common"
	"github.com/labstack/echo/v4"
)

func (s *HTTPServer) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, common.ErrInvalidInput.Error())
	}

	user, err := s.users.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return s.mapError(c, err)
	}

	s.logger.Info(c.Request().Context(), "Registered", "username", user.Username)
	return c.JSON(http.StatusCreated, toUserDTO(user))
}

func (s *HTTPServer) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, common.ErrInvalidInput.Error())
	}

	token, user, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusOK, loginResponse{AccessToken: token, User: toUserDTO(user)})
}

func (s *HTTPServer) createPost(c echo.Context) error {
	userID, ok := userIDFromEchoContext(c)
	if !ok {
		return errorResponse(c, http.StatusUnauthorized, common.ErrUnauthenticated.Error())
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, common.ErrInvalidInput.Error())
	}

	post, err := s.posts.Create(c.Request().Context(), userID, req.Title, req.Content)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusCreated, toPostDTO(post))
}

func (s *HTTPServer) getPost(c echo.Context) error {
	id, err := postID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error())
	}

	post, err := s.posts.Get(c.Request().Context(), id)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusOK, toPostDTO(post))
}

func (s *HTTPServer) updatePost(c echo.Context) error {
	userID, ok := userIDFromEchoContext(c)
	if !ok {
		return errorResponse(c, http.StatusUnauthorized, common.ErrUnauthenticated.Error())
	}

	id, err := postID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error())
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, common.ErrInvalidInput.Error())
	}

	post, err := s.posts.Update(c.Request().Context(), userID, id, req.Title, req.Content)
	if err != nil {
		return s.mapError(c, err)
	}

	return c.JSON(http.StatusOK, toPostDTO(post))
}

func (s *HTTPServer) deletePost(c echo.Context) error {
	userID, ok := userIDFromEchoContext(c)
	if !ok {
		return errorResponse(c, http.StatusUnauthorized, common.ErrUnauthenticated.Error())
	}

	id, err := postID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error())
	}

	if err := s.posts.Delete(c.Request().Context(), userID, id); err != nil {
		return s.mapError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) listPosts(c echo.Context) error {
	limit, err := queryUint32(c, "limit")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error())
	}
	offset, err := queryUint32(c, "offset")
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error())
	}

	result, effLimit, total, err := s.posts.List(c.Request().Context(), limit, offset)
	if err != nil {
		return s.mapError(c, err)
	}

	resp := listPostsResponse{
		Posts:  make([]postDTO, 0, len(result)),
		Limit:  effLimit,
		Offset: offset,
		Total:  total,
	}
	for _, post := range result {
		resp.Posts = append(resp.Posts, toPostDTO(post))
	}

	return c.JSON(http.StatusOK, resp)
}

// mapError translates domain errors into HTTP statuses, 1:1 with the gRPC
// adapter. Unexpected errors are logged and reported as a bare 500.
func (s *HTTPServer) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrConflict):
		return errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return errorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrForbidden):
		return errorResponse(c, http.StatusForbidden, err.Error())
	default:
		s.logger.Error(c.Request().Context(), err.Error())
		return errorResponse(c, http.StatusInternalServerError, common.ErrInternal.Error())
	}
}

func errorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, errorDTO{Error: message})
}

func postID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid post id")
	}
	return id, nil
}

func queryUint32(c echo.Context, name string) (uint32, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return uint32(value), nil
}
