package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vpopov/authgate/internal/common"
	"github.com/vpopov/authgate/internal/server/models"
	"github.com/vpopov/authgate/internal/server/services"
)

type registerRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string            `json:"access_token"`
	User        *models.Principal `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, map[string]string{"body": err.Error()})
		return
	}

	if fields := validateRegister(&req); len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	s.logger.Info(r.Context(), "Registration request")

	result, err := s.auth.Register(r.Context(), services.Credentials{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUser) {
			writeUnauthorized(w)
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeInternalError(w)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", result.Principal.Username)
	respondJSON(w, http.StatusCreated, authResponse{AccessToken: result.AccessToken, User: result.Principal})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, map[string]string{"body": err.Error()})
		return
	}

	if fields := validateLogin(&req); len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	result, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeUnauthorized(w)
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{AccessToken: result.AccessToken, User: result.Principal})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}
	respondJSON(w, http.StatusOK, principal)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
