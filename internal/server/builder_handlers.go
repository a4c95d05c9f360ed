package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goliatone/go-smartexit/pkg/editor"
	"github.com/goliatone/go-smartexit/pkg/export"
	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/render"
	"github.com/goliatone/go-smartexit/pkg/store"
)

// maxBodyBytes bounds request bodies on the builder API.
const maxBodyBytes = 1 << 20

type addFieldRequest struct {
	Type string `json:"type"`
}

type updateFieldRequest struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type dateRangeRequest struct {
	MinDate string `json:"minDate"`
	MaxDate string `json:"maxDate"`
}

type fieldsResponse struct {
	Fields []model.Field `json:"fields"`
	Count  int           `json:"count"`
}

type issuesResponse struct {
	Valid  bool           `json:"valid"`
	Issues []export.Issue `json:"issues"`
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func (s *Server) handleTypes(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.types.Descriptors())
}

func (s *Server) handleListFields(w http.ResponseWriter, _ *http.Request) {
	fields := s.session.Fields()
	respondJSON(w, http.StatusOK, fieldsResponse{Fields: fields, Count: len(fields)})
}

func (s *Server) handleAddField(w http.ResponseWriter, r *http.Request) {
	var req addFieldRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	fieldType, ok := model.ParseFieldType(req.Type)
	if !ok {
		respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("%s: %q", store.ErrUnknownFieldType, req.Type))
		return
	}
	field, err := s.session.AddField(fieldType)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Location", BuilderPath+"/fields/"+string(field.ID))
	respondJSON(w, http.StatusCreated, field)
}

func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	id := model.FieldID(mux.Vars(r)["id"])
	if _, ok := s.session.Store().Get(id); !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("field %q not found", id))
		return
	}
	var req updateFieldRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.session.UpdateField(id, model.Key(req.Key), req.Value); err != nil {
		s.fail(w, r, err)
		return
	}
	field, ok := s.session.Store().Get(id)
	if !ok {
		// removed concurrently
		respondError(w, http.StatusNotFound, fmt.Sprintf("field %q not found", id))
		return
	}
	respondJSON(w, http.StatusOK, field)
}

// handleSetDateRange replaces both bounds of a date field in one step, so a
// range can move past the current one without an intermediate inverted state.
func (s *Server) handleSetDateRange(w http.ResponseWriter, r *http.Request) {
	ed := editor.New(s.session.Store(), model.FieldID(mux.Vars(r)["id"]))
	if _, err := ed.Field(); err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("field %q not found", ed.ID()))
		return
	}
	var req dateRangeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ed.SetDateRange(req.MinDate, req.MaxDate); err != nil {
		s.fail(w, r, err)
		return
	}
	field, err := ed.Field()
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("field %q not found", ed.ID()))
		return
	}
	respondJSON(w, http.StatusOK, field)
}

func (s *Server) handleRemoveField(w http.ResponseWriter, r *http.Request) {
	s.session.RemoveField(model.FieldID(mux.Vars(r)["id"]))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	opts := render.RenderOptions{
		Title: r.URL.Query().Get("title"),
		Theme: s.theme,
	}
	out, contentType, err := s.session.Preview(r.Context(), r.URL.Query().Get("format"), opts, nil)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	fields := s.session.Fields()
	if strings.EqualFold(r.URL.Query().Get("format"), "yaml") {
		out, err := export.YAML(fields)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
		return
	}
	if err := export.WriteDownload(w, fields); err != nil {
		s.logger.Warn("export download failed", zap.Error(err))
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		if body, err = export.YAMLToJSON(body); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	fields, err := s.session.Import(body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, fieldsResponse{Fields: fields, Count: len(fields)})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	result, err := s.session.Save(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, export.SubmissionSchema(s.session.Fields()))
}

func (s *Server) handleValidate(w http.ResponseWriter, _ *http.Request) {
	issues := s.session.Validate()
	if issues == nil {
		issues = []export.Issue{}
	}
	respondJSON(w, http.StatusOK, issuesResponse{Valid: len(issues) == 0, Issues: issues})
}
