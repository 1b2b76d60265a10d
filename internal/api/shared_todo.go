package api

import "net/http"

func (s *Server) handleListSharedTodos(w http.ResponseWriter, r *http.Request) {
	skip, limit := pageParams(r)

	shares, err := s.shares.List(r.Context(), principalFrom(r), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shares)
}

func (s *Server) handleListSharedTodoTasks(w http.ResponseWriter, r *http.Request) {
	todoID, ok := pathID(r, "todoID")
	if !ok {
		errorJSON(w, http.StatusBadRequest, "invalid todo id")
		return
	}
	skip, limit := pageParams(r)

	tasks, err := s.shares.ListTasks(r.Context(), principalFrom(r), todoID, skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
