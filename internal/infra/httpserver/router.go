package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appchat "github.com/seongmin2223/resumepro/internal/application/chat"
	appresumes "github.com/seongmin2223/resumepro/internal/application/resumes"
	domain "github.com/seongmin2223/resumepro/internal/domain/resumes"
	"github.com/seongmin2223/resumepro/internal/middleware"
)

const reportFilename = "분석리포트.pdf"

type Router struct {
	resumesSvc *appresumes.Service
	chatSvc    *appchat.Service
	log        *zap.Logger
}

func New(resumesSvc *appresumes.Service, chatSvc *appchat.Service, log *zap.Logger) http.Handler {
	r := &Router{resumesSvc: resumesSvc, chatSvc: chatSvc, log: log}
	mux := chi.NewRouter()

	mux.Route("/api/ai", func(rt chi.Router) {
		rt.Post("/resume-check", r.wrap(r.handleResumeCheck))
		rt.Post("/upload-resume", r.wrap(r.handleUploadResume))
		rt.Get("/history", r.wrap(r.handleHistory))
		rt.Get("/download-pdf/{id}", r.wrap(r.handleDownloadPDF))
		rt.Post("/send-email", r.wrap(r.handleSendEmail))
		rt.Post("/chat/{historyId}", r.wrap(r.handleChat))
		rt.Get("/stats", r.wrap(r.handleStats))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound), errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domain.ErrRenderFailed):
				// generic by contract; the reason stays in the logs
				r.logError(req, err)
				http.Error(w, "report generation failed", http.StatusInternalServerError)
			default:
				r.logError(req, err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

func (r *Router) logError(req *http.Request, err error) {
	if r.log != nil {
		r.log.Error("handler error", zap.String("path", req.URL.Path), zap.Error(err))
	}
}

// POST /api/ai/resume-check
// Body: {"resume": "<text>"}
// A blank resume gets the fixed "nothing to analyze" message with 200; a
// model failure still yields 200 with a stored, substituted reply.
func (r *Router) handleResumeCheck(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Resume string `json:"resume"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return writeJSON(w, http.StatusBadRequest, map[string]any{"content": "invalid request body"})
	}

	owner := middleware.GetOwnerFromContext(req.Context())
	content, h, err := r.resumesSvc.Analyze(req.Context(), owner, body.Resume)
	if err != nil {
		return err
	}

	// blank input short-circuits without running an analysis
	if h != nil {
		middleware.IncrementAnalyses()
	}
	return writeJSON(w, http.StatusOK, map[string]any{"content": content})
}

// POST /api/ai/upload-resume (multipart, field "file")
func (r *Router) handleUploadResume(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(middleware.MaxUploadBytes); err != nil {
		return writeJSON(w, http.StatusBadRequest, map[string]any{"content": "invalid multipart request"})
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		return writeJSON(w, http.StatusBadRequest, map[string]any{"content": "file is required"})
	}
	defer file.Close()

	if err := middleware.ValidateUpload(header); err != nil {
		return writeJSON(w, http.StatusBadRequest, map[string]any{"content": err.Error()})
	}

	data, err := io.ReadAll(io.LimitReader(file, middleware.MaxUploadBytes+1))
	if err != nil {
		return err
	}
	if len(data) > middleware.MaxUploadBytes {
		return writeJSON(w, http.StatusBadRequest, map[string]any{"content": "file too large"})
	}

	owner := middleware.GetOwnerFromContext(req.Context())
	content, _, err := r.resumesSvc.AnalyzeUpload(req.Context(), owner, header.Filename, data)
	if errors.Is(err, appresumes.ErrEmptyUpload) {
		return writeJSON(w, http.StatusBadRequest, map[string]any{"content": "PDF에서 내용을 읽을 수 없습니다."})
	}
	if err != nil {
		return err
	}

	middleware.IncrementUploads()
	middleware.IncrementAnalyses()
	return writeJSON(w, http.StatusOK, map[string]any{"content": content})
}

// GET /api/ai/history?limit=50
// With an authenticated owner only that owner's records are returned;
// single-tenant mode lists everything.
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	owner := middleware.GetOwnerFromContext(req.Context())
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.resumesSvc.History(req.Context(), owner, limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.History{}
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /api/ai/download-pdf/{id}
func (r *Router) handleDownloadPDF(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		return domain.ErrNotFound
	}

	pdf, err := r.resumesSvc.Report(req.Context(), domain.HistoryID(id))
	if err != nil {
		return err
	}

	middleware.IncrementReports()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(reportFilename)))
	_, err = w.Write(pdf)
	return err
}

// POST /api/ai/send-email
// Body: {"email": "<dest>", "content": "<analysis text>"}
func (r *Router) handleSendEmail(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email   string `json:"email"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Email == "" || body.Content == "" {
		return writeJSON(w, http.StatusBadRequest, map[string]any{"content": "이메일 주소나 내용이 누락되었습니다."})
	}
	if err := middleware.ValidateEmail(body.Email); err != nil {
		return writeJSON(w, http.StatusBadRequest, map[string]any{"content": err.Error()})
	}

	if err := r.resumesSvc.EmailReport(req.Context(), body.Email, body.Content); err != nil {
		return fmt.Errorf("발송 실패: %w", err)
	}

	middleware.IncrementEmails()
	return writeJSON(w, http.StatusOK, map[string]any{"content": "발송 성공"})
}

// POST /api/ai/chat/{historyId}
// Body: {"message": "<question>"}
// The reply is live conversation: unsanitized and never persisted.
func (r *Router) handleChat(w http.ResponseWriter, req *http.Request) error {
	id, err := strconv.ParseInt(chi.URLParam(req, "historyId"), 10, 64)
	if err != nil {
		return domain.ErrNotFound
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Message == "" {
		return writeJSON(w, http.StatusBadRequest, map[string]any{"content": "message is required"})
	}

	reply, err := r.chatSvc.Reply(req.Context(), domain.HistoryID(id), body.Message)
	if err != nil {
		return err
	}

	middleware.IncrementChatReplies()
	return writeJSON(w, http.StatusOK, map[string]any{"sender": "AI", "content": reply})
}

// GET /api/ai/stats
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) error {
	stats, err := r.resumesSvc.Stats(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
