package api

import (
	"net/http"

	"github.com/eleven-am/squall/internal/model"
)

type todoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var in todoRequest
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Title == "" {
		errorJSON(w, http.StatusBadRequest, "title required")
		return
	}

	todo, err := s.todos.Create(r.Context(), principalFrom(r), in.Title, in.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(r, "todoID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	todo, err := s.todos.GetByID(r.Context(), principalFrom(r), todoID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)

	todos, err := s.todos.List(r.Context(), principalFrom(r), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handlePatchTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(r, "todoID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var patch model.TodoPatch
	if err := decodeJSON(r, &patch); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	todo, err := s.todos.PartialUpdate(r.Context(), principalFrom(r), todoID, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(r, "todoID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	if err := s.todos.Delete(r.Context(), principalFrom(r), todoID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type shareRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleShareTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(r, "todoID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var in shareRequest
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Email == "" {
		errorJSON(w, http.StatusBadRequest, "email required")
		return
	}

	share, err := s.shares.Share(r.Context(), principalFrom(r), todoID, in.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, share)
}

func (s *Server) handleUnshareTodo(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(r, "todoID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	if err := s.shares.Unshare(r.Context(), principalFrom(r), todoID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
