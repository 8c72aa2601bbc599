package main

import (
	"fmt"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"fintalkweb/internal/domain/profile"
)

// for cloudinary uploadParams
func boolPtr(b bool) *bool {
	return &b
}

func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	editor := profile.NewEditor(app.viewerAPI(r))
	editor.Load(r.Context())

	state := editor.State()
	if !state.Loaded {
		app.upstreamErrorResponse(w, r, state.ErrorMessage)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, state); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var form profile.Form
	if err := readJSON(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	editor := profile.NewEditor(app.viewerAPI(r))
	editor.Submit(r.Context(), form)

	state := editor.State()
	if len(state.FieldErrors) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"field_errors": state.FieldErrors})
		return
	}
	if state.ErrorMessage == profile.EmptyFormMessage {
		app.badRequestResponse(w, r, fmt.Errorf("%s", state.ErrorMessage))
		return
	}
	if state.ErrorMessage != "" {
		app.upstreamErrorResponse(w, r, state.ErrorMessage)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, state); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadAvatarHandler stores the picture on Cloudinary and persists the
// secure URL through the profile editor.
func (app *application) uploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	userID := getViewerFromContext(r).UserID
	overwrite := boolPtr(true) // Using the helper function

	// Parse the multipart form
	err := r.ParseMultipartForm(2 << 20) // 2 MB
	if err != nil {
		http.Error(w, "Unable to parse form, file size limit is 2MB", http.StatusBadRequest)
		return
	}

	// Retrieve the file from the form data
	file, fileHeader, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "Unable to retrieve file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Validate file type (allow only JPEG & PNG)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		http.Error(w, "Only JPEG and PNG images are allowed", http.StatusBadRequest)
		return
	}

	uploadParams := uploader.UploadParams{
		PublicID:  fmt.Sprintf("/%d", userID), // Save with userID as filename
		Overwrite: overwrite,
		// Replace old avatar
		Folder:         "profile_pictures",          // Organized storage
		Transformation: "w_300,h_300,c_fill,q_auto", // Resize to 300x300, auto quality
	}
	uploadResult, err := app.cld.Upload.Upload(r.Context(), file, uploadParams)
	if err != nil {
		http.Error(w, "Failed to upload image to Cloudinary", http.StatusInternalServerError)
		return
	}

	editor := profile.NewEditor(app.viewerAPI(r))
	editor.Submit(r.Context(), profile.Form{AvatarURL: &uploadResult.SecureURL})

	state := editor.State()
	if state.ErrorMessage != "" {
		app.upstreamErrorResponse(w, r, state.ErrorMessage)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, state); err != nil {
		app.internalServerError(w, r, err)
	}
}
