package block

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	// RenderPath serves the server-side render of the block.
	RenderPath = "/render"

	// MenusPath serves the menus the editor can choose from.
	MenusPath = "/menus"
)

// ParseRequest reads a render request from the query string:
// menu (optional id), context and url.
func ParseRequest(r *http.Request) (Request, error) {
	q := r.URL.Query()

	req := Request{
		Context: q.Get("context"),
		URL:     q.Get("url"),
	}

	if v := q.Get("menu"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Request{}, fmt.Errorf("invalid menu id %q", v)
		}
		req.MenuID = &id
	}

	return req, nil
}

// RenderHandler returns an HTTP handler rendering the block as text/html.
func (b *Block) RenderHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := ParseRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		out, err := b.Render(r.Context(), req)
		if err != nil {
			slog.Error("failed to render block", "url", req.URL, "error", err)
			writeError(w, http.StatusInternalServerError, "error, see logs for details")
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(out)); err != nil {
			slog.Error("failed to write render response", "error", err)
		}
	})
}

// MenusHandler returns an HTTP handler listing the editor menu options as JSON.
func (b *Block) MenusHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts, err := b.Options(r.Context())
		if err != nil {
			slog.Error("failed to list menus", "error", err)
			writeError(w, http.StatusInternalServerError, "error, see logs for details")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"options": opts})
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	slog.Debug("handling error response",
		"status", status,
		"message", message,
	)

	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}
