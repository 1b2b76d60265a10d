package api

import (
	"net/http"
	"strconv"

	"github.com/eleven-am/squall/internal/model"
)

type taskRequest struct {
	TodoID      int64  `json:"todo_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    *int   `json:"priority"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in taskRequest
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Title == "" || in.TodoID == 0 {
		errorJSON(w, http.StatusBadRequest, "title and todo_id required")
		return
	}

	task, err := s.tasks.Create(r.Context(), principalFrom(r), in.TodoID, in.Title, in.Description, in.Priority)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := s.tasks.GetByID(r.Context(), principalFrom(r), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)

	var todoID *int64
	if v := r.URL.Query().Get("todo_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid todo_id")
			return
		}
		todoID = &id
	}

	tasks, err := s.tasks.List(r.Context(), principalFrom(r), skip, limit, todoID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handlePatchTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var patch model.TaskPatch
	if err := decodeJSON(r, &patch); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := s.tasks.PartialUpdate(r.Context(), principalFrom(r), taskID, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := s.tasks.Delete(r.Context(), principalFrom(r), taskID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
