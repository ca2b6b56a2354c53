package api

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/taskify/intake/internal/upload"
)

// UploadsHandler serves previously stored resume files by exact filename.
type UploadsHandler struct {
	store *upload.Store
}

func NewUploadsHandler(store *upload.Store) *UploadsHandler {
	return &UploadsHandler{store: store}
}

func (h *UploadsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]
	path, err := h.store.Path(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, path)
}
