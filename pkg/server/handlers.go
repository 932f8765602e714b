package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/chaostower/pkg/buildinfo"
	"github.com/matzehuels/chaostower/pkg/errors"
	pkgio "github.com/matzehuels/chaostower/pkg/io"
	"github.com/matzehuels/chaostower/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.Presets)
}

func (s *Server) handleChaos(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r)
	if !ok {
		return
	}
	var opts pipeline.ChaosOptions
	if !s.decode(w, r, &opts) {
		return
	}
	if err := opts.ValidateAndSetDefaults(s.runner.Presets); err != nil {
		s.fail(w, err)
		return
	}
	if !s.checkPoints(w, opts.N) {
		return
	}

	res, err := s.runner.RunChaos(r.Context(), opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeRun(w, format, res.RunID, res.Decision.String(), res.CacheHit, pkgio.Dump{
		RunID:   res.RunID,
		Engine:  res.Engine,
		Config:  opts,
		Points:  res.Sequence.Points,
		Choices: res.Sequence.Choices,
	})
}

func (s *Server) handleIFS(w http.ResponseWriter, r *http.Request) {
	format, ok := s.format(w, r)
	if !ok {
		return
	}
	var opts pipeline.IFSOptions
	if !s.decode(w, r, &opts) {
		return
	}
	if err := opts.ValidateAndSetDefaults(s.runner.Presets); err != nil {
		s.fail(w, err)
		return
	}
	if !s.checkPoints(w, opts.N) {
		return
	}

	res, err := s.runner.RunIFS(r.Context(), opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeRun(w, format, res.RunID, res.Decision.String(), res.CacheHit, pkgio.Dump{
		RunID:   res.RunID,
		Engine:  res.Engine,
		Config:  opts,
		Points:  res.Sequence.Points,
		Choices: res.Sequence.Choices,
	})
}

func (s *Server) handleRule(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.GraphFormatSVG
	}
	var opts pipeline.ChaosOptions
	if !s.decode(w, r, &opts) {
		return
	}
	out, err := s.runner.RuleGraph(r.Context(), opts, format)
	if err != nil {
		s.fail(w, err)
		return
	}
	if format == pipeline.GraphFormatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// format reads ?format, defaulting to JSON.
func (s *Server) format(w http.ResponseWriter, r *http.Request) (string, bool) {
	format := r.URL.Query().Get("format")
	if format == "" {
		return pipeline.FormatJSON, true
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, err)
		return "", false
	}
	return format, true
}

// decode reads a JSON body into v. An empty body leaves v unchanged.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !stderrors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidFormat), "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) checkPoints(w http.ResponseWriter, n int) bool {
	if n > s.cfg.MaxPoints {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput),
			fmt.Sprintf("n = %d exceeds the server limit of %d", n, s.cfg.MaxPoints))
		return false
	}
	return true
}

func (s *Server) writeRun(w http.ResponseWriter, format, runID, decision string, hit bool, d pkgio.Dump) {
	h := w.Header()
	h.Set("X-Run-ID", runID)
	h.Set("X-Cache-Decision", decision)
	h.Set("X-Cache-Hit", strconv.FormatBool(hit))
	if format == pipeline.FormatCSV {
		h.Set("Content-Type", "text/csv; charset=utf-8")
	} else {
		h.Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	if err := pkgio.Write(w, d, format); err != nil {
		s.logger.Warn("write response", "run_id", runID, "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeError(w, status, string(code), errors.UserMessage(err))
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPreset,
		errors.ErrCodeConfiguration:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNumeric:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = msg
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
