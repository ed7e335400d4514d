package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/rv32i-tools/rv32asm/format"
	"github.com/rv32i-tools/rv32asm/service"
	"github.com/rv32i-tools/rv32asm/tools"
)

// AssembleRequest is the POST body for /api/v1/assemble.
type AssembleRequest struct {
	Source string `json:"source"`
	Strict *bool  `json:"strict,omitempty"`
	Format string `json:"format,omitempty"` // "hex" (default) or "binary"
}

// ErrorResponse is the shape the assemble, lint and xref handlers use to
// report a request error (the health check answers a wrong method with
// plain-text http.Error), distinct from an assembler diagnostic (which is a successful
// request that found problems in the submitted source).
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (s *Server) handleAssemble(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req AssembleRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	strict := true
	if req.Strict != nil {
		strict = *req.Strict
	}
	style := format.Hex
	if req.Format == "binary" {
		style = format.Binary
	}

	report := service.Assemble(req.Source, "input.s", strict, style)
	writeJSON(w, http.StatusOK, report)
}

// LintRequest is the POST body for /api/v1/lint.
type LintRequest struct {
	Source string `json:"source"`
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req LintRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	issues := service.Lint(req.Source, tools.DefaultLintOptions())
	writeJSON(w, http.StatusOK, map[string]interface{}{"issues": issues})
}

// XRefRequest is the POST body for /api/v1/xref.
type XRefRequest struct {
	Source string `json:"source"`
}

func (s *Server) handleXRef(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req XRefRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	symbols := service.XRef(req.Source)
	writeJSON(w, http.StatusOK, map[string]interface{}{"symbols": symbols})
}

// maxRequestBody caps a POST body at 1MiB - generous for a source file,
// small enough to bound a malicious client's memory footprint.
const maxRequestBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("rv32asm api: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(v)
}
