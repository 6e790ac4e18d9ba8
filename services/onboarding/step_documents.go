package onboarding

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"lexmarket/models"
)

const StepDocuments = "documents"

const maxDocumentBytes = 5 << 20

type documentField struct {
	name       string
	extensions []string
}

var documentFields = []documentField{
	{name: "nba_certificate", extensions: []string{".pdf", ".jpg", ".jpeg", ".png"}},
	{name: "cv", extensions: []string{".pdf", ".doc", ".docx"}},
}

// DocumentsStep uploads the enrollment certificate and CV through the document store.
type DocumentsStep struct{}

func (DocumentsStep) Rules() []FieldRule {
	rules := make([]FieldRule, 0, len(documentFields))
	for _, f := range documentFields {
		exts := make([]string, 0, len(f.extensions))
		for _, e := range f.extensions {
			exts = append(exts, strings.TrimPrefix(e, "."))
		}
		rules = append(rules, FieldRule{
			Field:    f.name,
			Type:     "file",
			Required: true,
			Rules:    []string{"required", "file", "ext=" + strings.Join(exts, " "), fmt.Sprintf("max_kb=%d", maxDocumentBytes>>10)},
		})
	}
	return rules
}

func (DocumentsStep) Validate(payload StepPayload) error {
	verr := &ValidationError{Step: StepDocuments, Fields: map[string]string{}}
	for _, f := range documentFields {
		file := payload.Files[f.name]
		switch {
		case file == nil || file.Body == nil:
			verr.Fields[f.name] = "is required"
		case file.Size <= 0:
			verr.Fields[f.name] = "is empty"
		case file.Size > maxDocumentBytes:
			verr.Fields[f.name] = fmt.Sprintf("must not exceed %d KB", maxDocumentBytes>>10)
		case !allowedExtension(file.Filename, f.extensions):
			verr.Fields[f.name] = "must be a file of type: " + strings.Join(f.extensions, ", ")
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func allowedExtension(filename string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

func (DocumentsStep) IsComplete(profile *models.Profile, _ *models.Account) bool {
	return profile.BarCertificatePath != "" && profile.CVPath != ""
}

func (DocumentsStep) CompletionPercentage(profile *models.Profile, _ *models.Account) int {
	return filledPercent(profile.BarCertificatePath != "", profile.CVPath != "")
}

// Persist uploads every file before touching the profile, so a failed upload
// leaves no document reference behind. Uploaded references are recorded in
// env.Stored for the caller to clean up if the enclosing save fails.
func (DocumentsStep) Persist(ctx context.Context, env *StepEnv, payload StepPayload) (map[string]interface{}, error) {
	if env.Documents == nil {
		return nil, &DocumentUploadError{Field: StepDocuments, Err: errors.New("document storage is not configured")}
	}
	scope := path.Join(env.DocumentFolder, "lawyers", env.Account.ID, "documents")

	refs := make(map[string]string, len(documentFields))
	for _, f := range documentFields {
		file := payload.Files[f.name]
		if file == nil {
			return nil, &DocumentUploadError{Field: f.name, Err: errors.New("file missing")}
		}
		ref, err := env.Documents.Store(ctx, file.Body, file.Filename, scope)
		if err != nil {
			return nil, &DocumentUploadError{Field: f.name, Err: err}
		}
		env.Stored = append(env.Stored, ref)
		refs[f.name] = ref
	}

	for _, old := range []string{env.Profile.BarCertificatePath, env.Profile.CVPath} {
		if old != "" {
			env.Replaced = append(env.Replaced, old)
		}
	}
	env.Profile.BarCertificatePath = refs["nba_certificate"]
	env.Profile.CVPath = refs["cv"]

	snapshot := make(map[string]interface{}, len(refs))
	for k, v := range refs {
		snapshot[k] = v
	}
	return snapshot, nil
}

func (DocumentsStep) Data(profile *models.Profile, _ *models.Account) map[string]interface{} {
	return map[string]interface{}{
		"has_nba_certificate": profile.BarCertificatePath != "",
		"has_cv":              profile.CVPath != "",
		"nba_certificate":     profile.BarCertificatePath,
		"cv":                  profile.CVPath,
	}
}
