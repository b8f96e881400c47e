package generation

import "mime/multipart"

type uploadForm struct {
	File        *multipart.FileHeader `form:"file" binding:"required"`
	CompanyName string                `form:"companyName" binding:"required"`
	JobTitle    string                `form:"jobTitle"`
	Template    string                `form:"template"`
}

// UploadResponse is the JSON returned by a successful upload.
type UploadResponse struct {
	GenerationID  string `json:"generationId"`
	FileName      string `json:"fileName"`
	Template      string `json:"template"`
	EmailBody     string `json:"emailBody"`
	ExtractedText string `json:"extractedText"`
	DetectedType  string `json:"detectedType,omitempty"`
	Model         string `json:"model,omitempty"`
	Degraded      bool   `json:"degraded,omitempty"`
}

// NewUploadResponse maps a Result onto the wire shape.
func NewUploadResponse(res Result) UploadResponse {
	return UploadResponse{
		GenerationID:  res.GenerationID,
		FileName:      res.FileName,
		Template:      res.Template.String(),
		EmailBody:     res.EmailBody,
		ExtractedText: res.ExtractedText,
		DetectedType:  res.DetectedType,
		Model:         res.Model,
		Degraded:      res.Degraded,
	}
}
