package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/catalyst/backend/internal/model"
	"github.com/catalyst/backend/internal/service"
	"github.com/catalyst/backend/internal/storage"
	"github.com/catalyst/backend/internal/validate"
)

const (
	maxIntakeBody     = 1 << 20  // JSON and urlencoded bodies
	maxUploadBody     = 26 << 20 // multipart bodies with attachments
	maxAttachmentSize = 5 << 20
	maxAttachments    = 5
	attachmentField   = "attached_files"
)

var allowedAttachmentExt = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".zip": true,
}

// IntakeHandler serves the public submission endpoints.
type IntakeHandler struct {
	intake service.IntakeService
	files  storage.Storage // nil disables uploads
	now    func() time.Time
}

func NewIntakeHandler(intake service.IntakeService, files storage.Storage) *IntakeHandler {
	return &IntakeHandler{intake: intake, files: files, now: time.Now}
}

// SubmitProject handles POST /submit-project. Multipart posts may carry
// attachment files in the attached_files field.
func (h *IntakeHandler) SubmitProject(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, h.intake.SubmitProject, true)
}

// SubmitContact handles POST /submit-contact. The body may be JSON or a
// urlencoded form.
func (h *IntakeHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, h.intake.SubmitContact, false)
}

type submitFunc func(ctx context.Context, p validate.Payload) model.IntakeResult

func (h *IntakeHandler) submit(w http.ResponseWriter, r *http.Request, fn submitFunc, uploads bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, model.IntakeResult{Error: "Method not allowed"})
		return
	}

	p, saved, err := h.readPayload(w, r, uploads)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, service.Rejected(err))
		return
	}

	res := fn(r.Context(), p)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
		h.discard(r.Context(), saved)
	}
	writeJSON(w, status, res)
}

// readPayload decodes the body and stores any uploaded attachments. The keys
// of stored files are returned so a rejected submission can remove them.
func (h *IntakeHandler) readPayload(w http.ResponseWriter, r *http.Request, uploads bool) (validate.Payload, []string, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
		if err := r.ParseMultipartForm(maxIntakeBody); err != nil {
			return nil, nil, fmt.Errorf("invalid form body: %w", err)
		}
		defer r.MultipartForm.RemoveAll()
		p := formPayload(r)
		if !uploads {
			return p, nil, nil
		}
		saved, err := h.saveAttachments(r.Context(), r.MultipartForm.File[attachmentField], p)
		if err != nil {
			return nil, nil, err
		}
		return p, saved, nil

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxIntakeBody)
		if err := r.ParseForm(); err != nil {
			return nil, nil, fmt.Errorf("invalid form body: %w", err)
		}
		return formPayload(r), nil, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIntakeBody))
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}
	p, err := validate.Decode(body)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return p, nil, nil
}

// saveAttachments stores each uploaded file and appends its reference to the
// payload's attached_files, after any references supplied as text.
func (h *IntakeHandler) saveAttachments(ctx context.Context, fhs []*multipart.FileHeader, p validate.Payload) ([]string, error) {
	if len(fhs) == 0 {
		return nil, nil
	}
	if h.files == nil {
		return nil, attachmentError("File uploads are not accepted.")
	}
	if len(fhs) > maxAttachments {
		return nil, attachmentError(fmt.Sprintf("Attach at most %d files.", maxAttachments))
	}
	for _, fh := range fhs {
		if fh.Size > maxAttachmentSize {
			return nil, attachmentError(fmt.Sprintf("%s is larger than %d MB.", fh.Filename, maxAttachmentSize>>20))
		}
		if !allowedAttachmentExt[strings.ToLower(path.Ext(fh.Filename))] {
			return nil, attachmentError(fmt.Sprintf("%s is not an accepted file type.", fh.Filename))
		}
	}

	refs := textRefs(p[attachmentField])
	var keys []string
	for _, fh := range fhs {
		key := storage.AttachmentKey(h.now(), fh.Filename)
		ref, err := h.saveFile(ctx, key, fh)
		if err != nil {
			h.discard(ctx, keys)
			return nil, fmt.Errorf("store attachment %s: %w", fh.Filename, err)
		}
		keys = append(keys, key)
		refs = append(refs, ref)
	}
	p[attachmentField] = refs
	return keys, nil
}

func (h *IntakeHandler) saveFile(ctx context.Context, key string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.files.Save(ctx, key, f, fh.Header.Get("Content-Type"))
}

func (h *IntakeHandler) discard(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := h.files.Delete(ctx, key); err != nil {
			slog.WarnContext(ctx, "remove attachment failed", "key", key, "error", err)
		}
	}
}

func attachmentError(msg string) error {
	return &validate.Errors{Fields: map[string][]string{attachmentField: {msg}}}
}

func textRefs(v any) []any {
	switch x := v.(type) {
	case []any:
		return x
	case string:
		x = strings.TrimSpace(x)
		var list []any
		if strings.HasPrefix(x, "[") && json.Unmarshal([]byte(x), &list) == nil {
			return list
		}
		if x != "" {
			return []any{x}
		}
	}
	return []any{}
}

// formPayload takes the first value of each form field; attached_files keeps all of them.
func formPayload(r *http.Request) validate.Payload {
	p := make(validate.Payload, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) == 0 {
			continue
		}
		if k == attachmentField && len(vs) > 1 {
			files := make([]any, len(vs))
			for i, v := range vs {
				files[i] = v
			}
			p[k] = files
			continue
		}
		p[k] = vs[0]
	}
	return p
}
