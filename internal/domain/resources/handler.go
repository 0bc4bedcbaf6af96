package resources

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crud-collections-api/internal/platform/logger"
)

// RegisterRoutes monta las 5 operaciones de un Kind:
//
//	GET    /get_<kind>s, /get_all_<kind>s
//	GET    /get_<kind>/{id}
//	POST   /add_<kind>
//	PUT    /update_<kind>/{id}
//	DELETE /delete_<kind>/{id}
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	k := svc.Kind()
	log = log.With(map[string]any{"resource": k.Name})

	// Alias histórico: los clientes viejos usan get_all_<kind>s
	r.Get("/get_"+k.Plural, listHandler(svc, log))
	r.Get("/get_all_"+k.Plural, listHandler(svc, log))

	r.Get("/get_"+k.Name+"/{id}", getHandler(svc, log))
	r.Post("/add_"+k.Name, createHandler(svc, log))
	r.Put("/update_"+k.Name+"/{id}", updateHandler(svc, log))
	r.Delete("/delete_"+k.Name+"/{id}", deleteHandler(svc, log))
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k := svc.Kind()

		docs, err := svc.List(r.Context())
		if err != nil {
			internalError(w, r, log, err)
			return
		}

		out := make([]map[string]any, 0, len(docs))
		for _, d := range docs {
			out = append(out, Project(k, d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		d, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, log, svc.Kind(), id, err)
			return
		}

		writeJSON(w, http.StatusOK, Project(svc.Kind(), d))
	}
}

func createHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k := svc.Kind()

		body, ok := decodeBody(w, r)
		if !ok {
			return
		}

		id, err := svc.Create(r.Context(), body)
		if err != nil {
			writeServiceError(w, r, log, k, "", err)
			return
		}

		log.Debug("document created", map[string]any{"id": id})

		// "id" es la key estable; "<kind>_id" se mantiene por compatibilidad con clientes viejos
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":      k.Title() + " added",
			"id":           id,
			k.Name + "_id": id,
		})
	}
}

func updateHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k := svc.Kind()
		id := chi.URLParam(r, "id")

		body, ok := decodeBody(w, r)
		if !ok {
			return
		}

		if _, err := svc.Update(r.Context(), id, body); err != nil {
			writeServiceError(w, r, log, k, id, err)
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{Message: k.Title() + " updated successfully"})
	}
}

func deleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k := svc.Kind()
		id := chi.URLParam(r, "id")

		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, log, k, id, err)
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{Message: k.Title() + " deleted successfully"})
	}
}

// decodeBody exige exactamente un objeto JSON. Los números quedan como
// json.Number y se normalizan al proyectar a F(R).
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return nil, false
	}
	// Nada después del objeto salvo espacios
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return nil, false
	}
	if body == nil {
		// "null" decodifica sin error
		body = map[string]any{}
	}
	return body, true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, log logger.Logger, k Kind, id string, err error) {
	switch {
	case errors.Is(err, ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: k.RequiredMessage()})
	case errors.Is(err, ErrInvalidNumber):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: k.Title() + " not found"})
	case errors.Is(err, ErrInvalidID):
		// Antes esto escapaba como 500 no manejado; ahora es error de cliente.
		log.Warn("malformed identifier", map[string]any{
			"id":     id,
			"method": r.Method,
			"path":   r.URL.Path,
		})
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + k.Name + " id"})
	default:
		internalError(w, r, log, err)
	}
}

func internalError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	log.Error("store operation failed", map[string]any{
		"error":  err.Error(),
		"method": r.Method,
		"path":   r.URL.Path,
	})
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
