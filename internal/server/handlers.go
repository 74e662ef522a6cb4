package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/docforge/internal/types"
)

// CatalogResponse represents the response for /catalog
type CatalogResponse struct {
	Industries   []string `json:"industries"`
	Themes       []string `json:"themes"`
	DefaultTheme string   `json:"default_theme"`
}

// handleGenerate renders the posted payload and returns the document bytes
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	payload, err := s.readBody(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	doc, err := s.engine.Generate(r.Context(), payload)
	if err != nil {
		if HTTPStatus(err) >= http.StatusInternalServerError {
			s.logger.Error("generation failed", zap.Error(err))
		}
		s.errorResponse(w, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", doc.MediaType)
	h.Set("Content-Length", strconv.Itoa(doc.Length))
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Bytes); err != nil {
		s.logger.Warn("failed to write document", zap.String("filename", doc.Filename), zap.Error(err))
	}
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	payload, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &ErrBodyTooLarge{Limit: maxErr.Limit}
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(payload) == 0 {
		return nil, &ErrEmptyBody{}
	}
	return payload, nil
}

// handleCatalog lists the industries and themes the engine offers
func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	cat := s.engine.Catalog()
	s.jsonResponse(w, http.StatusOK, CatalogResponse{
		Industries:   cat.Industries(types.KindProposal),
		Themes:       cat.ThemeIDs(),
		DefaultTheme: s.engine.DefaultThemeID(),
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
