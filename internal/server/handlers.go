package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/23bam037-tech/HITHESH-P-H/internal/document"
	"github.com/23bam037-tech/HITHESH-P-H/internal/export"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
	"github.com/23bam037-tech/HITHESH-P-H/internal/workflow"
)

// maxBodySize caps JSON request bodies
const maxBodySize = 1 << 20

// SessionResponse is returned when a session is created
type SessionResponse struct {
	SessionID string            `json:"session_id"`
	Snapshot  workflow.Snapshot `json:"snapshot"`
}

// AnswerRequest is the body of PUT /sessions/{id}/answers/{question_id}
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// CareerRequest is the body of POST /sessions/{id}/careers/select
type CareerRequest struct {
	Career string `json:"career"`
}

// ViewRequest is the body of POST /sessions/{id}/view
type ViewRequest struct {
	View string `json:"view"`
}

// ResumeTextRequest is the body of PUT /sessions/{id}/resume
type ResumeTextRequest struct {
	Text string `json:"text"`
}

// ResumeModeRequest is the body of POST /sessions/{id}/resume/mode
type ResumeModeRequest struct {
	Mode string `json:"mode"`
}

// ChatRequest is the body of POST /sessions/{id}/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the assistant reply and the resulting state
type ChatResponse struct {
	Message  types.ChatMessage `json:"message"`
	Snapshot workflow.Snapshot `json:"snapshot"`
}

// decodeJSON reads a JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &ErrBadRequest{Message: "invalid request body: " + err.Error()}
	}
	return nil
}

// controller resolves the session named by the {id} path value
func (s *Server) controller(w http.ResponseWriter, r *http.Request) (*workflow.Controller, bool) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Session ID is required")
		return nil, false
	}
	ctrl, err := s.sessions.Get(id)
	if err != nil {
		s.failResponse(w, err)
		return nil, false
	}
	return ctrl, true
}

// snapshotResponse reports err, or the session snapshot on success
func (s *Server) snapshotResponse(w http.ResponseWriter, ctrl *workflow.Controller, err error) {
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ctrl.Snapshot())
}

// handleCreateSession starts a new session on the form view
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.sessions.Create()
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, SessionResponse{
		SessionID: ctrl.ID(),
		Snapshot:  ctrl.Snapshot(),
	})
}

// handleGetSession returns the current snapshot
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, ctrl.Snapshot())
}

// handleDeleteSession ends a session and releases its resources
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		s.failResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateProfile replaces the profile fields
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	var profile types.Profile
	if err := decodeJSON(w, r, &profile); err != nil {
		s.failResponse(w, err)
		return
	}
	s.snapshotResponse(w, ctrl, ctrl.UpdateProfile(profile))
}

// handleStartAssessment generates a new question set
func (s *Server) handleStartAssessment(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	s.snapshotResponse(w, ctrl, ctrl.StartAssessment(r.Context()))
}

// handleRecordAnswer stores one answer
func (s *Server) handleRecordAnswer(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	questionID, err := strconv.Atoi(r.PathValue("question_id"))
	if err != nil {
		s.failResponse(w, &ErrBadRequest{Field: "question_id", Message: "must be an integer"})
		return
	}
	var req AnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failResponse(w, err)
		return
	}
	s.snapshotResponse(w, ctrl, ctrl.RecordAnswer(questionID, req.Answer))
}

// handleSubmitAssessment evaluates the recorded answers
func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	s.snapshotResponse(w, ctrl, ctrl.SubmitAssessment(r.Context()))
}

// handleDashboard fetches recommendations and opens the dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	s.snapshotResponse(w, ctrl, ctrl.ProceedToDashboard(r.Context()))
}

// handleSelectCareer switches the selected career. Analysis continues in the
// background; progress arrives on the events stream.
func (s *Server) handleSelectCareer(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	var req CareerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failResponse(w, err)
		return
	}
	s.snapshotResponse(w, ctrl, ctrl.SelectCareer(req.Career))
}

// handleRetryAnalysis restarts the analysis of the selected career
func (s *Server) handleRetryAnalysis(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	s.snapshotResponse(w, ctrl, ctrl.RetryAnalysis())
}

// handleNavigate changes the active view
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	var req ViewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failResponse(w, err)
		return
	}
	view, err := workflow.ParseView(req.View)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.snapshotResponse(w, ctrl, ctrl.Navigate(view))
}

// handleSetResume replaces the resume text
func (s *Server) handleSetResume(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	var req ResumeTextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failResponse(w, err)
		return
	}
	ctrl.SetResumeText(req.Text)
	s.jsonResponse(w, http.StatusOK, ctrl.Snapshot())
}

// handleUploadResume extracts text from an uploaded PDF
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}

	// Leave room for the multipart envelope around the document
	r.Body = http.MaxBytesReader(w, r.Body, document.MaxUploadSize+maxBodySize)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.failResponse(w, err)
			return
		}
		s.failResponse(w, &ErrBadRequest{Field: "file", Message: "a document upload is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "resume uploaded", "session_id", ctrl.ID(), "name", header.Filename, "bytes", len(data))
	s.snapshotResponse(w, ctrl, ctrl.UploadResume(r.Context(), data, header.Filename))
}

// handleAnalyzeResume audits the resume text
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	s.snapshotResponse(w, ctrl, ctrl.AnalyzeResume(r.Context()))
}

// handleOptimizeResume rewrites the resume for the current target
func (s *Server) handleOptimizeResume(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	s.snapshotResponse(w, ctrl, ctrl.OptimizeResume(r.Context()))
}

// handleResumeMode switches between the editor and the audit result
func (s *Server) handleResumeMode(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	var req ResumeModeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failResponse(w, err)
		return
	}
	mode, err := workflow.ParseResumeMode(req.Mode)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.snapshotResponse(w, ctrl, ctrl.SetResumeMode(mode))
}

// handleCopyResume returns the optimized resume as plain text for the clipboard
func (s *Server) handleCopyResume(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	text, err := ctrl.CopyOptimizedResume()
	if err != nil {
		s.failResponse(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, text) //nolint:errcheck
}

// handlePrintResume renders the print document as HTML, or as a PDF with ?format=pdf
func (s *Server) handlePrintResume(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	text, err := ctrl.PrintableResume()
	if err != nil {
		s.failResponse(w, err)
		return
	}
	html, err := export.PrintDocument(text)
	if err != nil {
		s.failResponse(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, html) //nolint:errcheck
	case "pdf":
		if s.renderer == nil {
			s.errorResponse(w, http.StatusNotImplemented, "PDF export is not configured")
			return
		}
		pdf, err := s.renderer.PDF(r.Context(), html)
		if err != nil {
			s.logger.ErrorContext(r.Context(), "pdf render failed", "session_id", ctrl.ID(), "error", err)
			s.failResponse(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
		w.WriteHeader(http.StatusOK)
		w.Write(pdf) //nolint:errcheck
	default:
		s.failResponse(w, &ErrBadRequest{Field: "format", Message: "must be html or pdf"})
	}
}

// handleChat sends a message to the career strategist
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.failResponse(w, err)
		return
	}
	msg, err := ctrl.SendMessage(r.Context(), req.Message)
	if err != nil {
		s.failResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ChatResponse{Message: msg, Snapshot: ctrl.Snapshot()})
}

// handleEvents streams session events via SSE. The first event is the
// current snapshot; the stream ends when the client leaves or the session ends.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.controller(w, r)
	if !ok {
		return
	}

	// Streams outlive the server write timeout
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		s.logger.WarnContext(r.Context(), "failed to clear write deadline", "error", err)
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ch, cancel := s.broker.Subscribe(ctrl.ID())
	defer cancel()

	if err := sse.WriteSnapshot(ctrl.Snapshot()); err != nil {
		return
	}

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-ch:
			if !open {
				sse.WriteClosed(ctrl.ID()) //nolint:errcheck
				return
			}
			if err := sse.WriteSessionEvent(ev); err != nil {
				s.logger.DebugContext(r.Context(), "event stream write failed", "session_id", ctrl.ID(), "error", err)
				return
			}
		case <-heartbeat.C:
			if err := sse.WriteHeartbeat(); err != nil {
				return
			}
		}
	}
}
