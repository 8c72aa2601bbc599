package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	"fintalkweb/internal/backend"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// EmptyFormMessage is surfaced when a submit carries no changed fields.
// Exported so the HTTP layer can map it back onto a client error.
const EmptyFormMessage = "nothing to update"

var formFieldNames = map[string]string{
	"FirstName": "first_name",
	"LastName":  "last_name",
	"Bio":       "bio",
	"Location":  "location",
	"Website":   "website",
	"AvatarURL": "avatar_url",
}

// Editor is the view-model behind the profile settings screen. Field values
// are whatever the server last confirmed; a failed save changes nothing
// locally and surfaces the error for a manual retry.
type Editor struct {
	client AccountClient

	mu          sync.Mutex
	profile     backend.Profile
	loaded      bool
	loading     bool
	errMsg      string
	fieldErrors map[string]string
	closed      bool
}

// EditorState is a render-ready snapshot.
type EditorState struct {
	Profile      backend.Profile   `json:"profile"`
	Loaded       bool              `json:"loaded"`
	Loading      bool              `json:"loading"`
	ErrorMessage string            `json:"error,omitempty"`
	FieldErrors  map[string]string `json:"field_errors,omitempty"`
}

func NewEditor(client AccountClient) *Editor {
	return &Editor{client: client}
}

// Load fetches the current profile document.
func (e *Editor) Load(ctx context.Context) {
	e.mu.Lock()
	if e.loading || e.closed {
		e.mu.Unlock()
		return
	}
	e.loading = true
	e.errMsg = ""
	e.fieldErrors = nil
	e.mu.Unlock()

	profile, err := e.client.GetProfile(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.loading = false
	if err != nil {
		e.errMsg = backend.UserMessage(err)
		return
	}
	e.profile = profile
	e.loaded = true
}

// Submit validates the form and patches only the fields it carries. Validation
// failures never reach the network; the local document is replaced only by the
// server's post-update answer.
func (e *Editor) Submit(ctx context.Context, form Form) {
	e.mu.Lock()
	if e.loading || e.closed {
		e.mu.Unlock()
		return
	}

	if fieldErrors := validateForm(form); len(fieldErrors) > 0 {
		e.fieldErrors = fieldErrors
		e.errMsg = ""
		e.mu.Unlock()
		return
	}

	updates := form.updates()
	if len(updates) == 0 {
		e.errMsg = EmptyFormMessage
		e.fieldErrors = nil
		e.mu.Unlock()
		return
	}

	e.loading = true
	e.errMsg = ""
	e.fieldErrors = nil
	e.mu.Unlock()

	profile, err := e.client.UpdateProfile(ctx, updates)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.loading = false
	if err != nil {
		e.errMsg = backend.UserMessage(err)
		return
	}
	e.profile = profile
	e.loaded = true
}

// RetryAfterError clears error state without resubmitting.
func (e *Editor) RetryAfterError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.errMsg = ""
	e.fieldErrors = nil
}

// Close tears the editor down; late responses are discarded.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}

func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return EditorState{
		Profile:      e.profile,
		Loaded:       e.loaded,
		Loading:      e.loading,
		ErrorMessage: e.errMsg,
		FieldErrors:  e.fieldErrors,
	}
}

func validateForm(form Form) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	out := make(map[string]string)
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		out["form"] = "invalid input"
		return out
	}
	for _, fieldErr := range invalid {
		name := formFieldNames[fieldErr.StructField()]
		if name == "" {
			name = fieldErr.StructField()
		}
		switch fieldErr.Tag() {
		case "max":
			out[name] = "value is too long"
		case "url":
			out[name] = "must be a valid URL"
		default:
			out[name] = "invalid value"
		}
	}
	return out
}
