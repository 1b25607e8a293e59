package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxImportSize = 10 << 20 // 10 MiB

type ExportHandler struct {
	exportService ExportService
	importService ImportService
}

func NewExportHandler(exportService ExportService, importService ImportService) *ExportHandler {
	return &ExportHandler{exportService, importService}
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	collection := Collection(mux.Vars(r)["collection"])
	if !collection.IsValid() {
		http.Error(w, "Unknown collection", http.StatusNotFound)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	switch format {
	case "csv":
		content, err := h.exportService.CSV(r.Context(), collection)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(collection)+".csv"))
		if _, err := w.Write(content); err != nil {
			log.Errorf("failed to write csv export: %v", err)
		}
	case "json":
		pretty := r.URL.Query().Get("pretty") != "false"
		content, err := h.exportService.JSON(r.Context(), collection, pretty)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(collection)+".json"))
		if _, err := w.Write(content); err != nil {
			log.Errorf("failed to write json export: %v", err)
		}
	default:
		http.Error(w, "Unsupported format", http.StatusBadRequest)
	}
}

func (h *ExportHandler) Bundle(w http.ResponseWriter, r *http.Request) {
	content, err := h.exportService.BundleJSON(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="fintrack-export.json"`)
	if _, err := w.Write(content); err != nil {
		log.Errorf("failed to write bundle export: %v", err)
	}
}

func (h *ExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filename, content, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	result, err := h.importService.Import(r.Context(), filename, content)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrInvalidImport) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ExportHandler) Validate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	_, content, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	result := h.importService.Validate(content)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// readUpload accepts either a multipart "file" field or a raw request body.
// Writes the error response itself on failure.
func (h *ExportHandler) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(maxImportSize); err == nil {
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Missing file field", http.StatusBadRequest)
			return "", nil, false
		}
		defer file.Close()

		content, err := io.ReadAll(io.LimitReader(file, maxImportSize))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return "", nil, false
		}
		return header.Filename, content, true
	}

	content, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	return "upload.json", content, true
}
