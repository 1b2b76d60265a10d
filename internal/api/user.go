package api

import (
	"errors"
	"net/http"

	"github.com/eleven-am/squall/internal/auth"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Email == "" || in.Username == "" || in.Password == "" {
		errorJSON(w, http.StatusBadRequest, "email, username and password required")
		return
	}

	user, err := s.auth.Register(r.Context(), in.Email, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			errorJSON(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	token, err := s.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			errorJSON(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	writeJSON(w, http.StatusOK, map[string]string{
		"id":    principal.ID.String(),
		"email": principal.Email,
	})
}
