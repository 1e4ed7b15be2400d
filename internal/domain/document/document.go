package document

import (
	"errors"
	"slices"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
)

var ErrDocumentNotFound = errors.New("document not found")

type Type string

const (
	TypeConsent        Type = "consent"
	TypeAssessment     Type = "assessment"
	TypeReport         Type = "report"
	TypeCorrespondence Type = "correspondence"
	TypeOther          Type = "other"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeConsent, TypeAssessment, TypeReport, TypeCorrespondence, TypeOther:
		return true
	}
	return false
}

// Document is file metadata; the file itself lives behind FileURL.
// PatientID is empty for clinic-wide documents.
type Document struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Type        Type        `json:"type"`
	PatientID   string      `json:"patientId,omitempty"`
	UploadedBy  string      `json:"uploadedBy"`
	UploadDate  domain.Date `json:"uploadDate"`
	FileURL     string      `json:"fileUrl"`
	Description string      `json:"description,omitempty"`
	Tags        []string    `json:"tags"`
}

func (d Document) Identifier() string { return d.ID }

func (d Document) Clone() Document {
	d.Tags = slices.Clone(d.Tags)
	return d
}

type CreateDocumentInput struct {
	Title       string   `json:"title"`
	Type        Type     `json:"type"`
	PatientID   string   `json:"patientId,omitempty"`
	UploadedBy  string   `json:"uploadedBy"`
	FileURL     string   `json:"fileUrl"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
}

func (in CreateDocumentInput) Validate() error {
	var v domain.Validator
	v.Required(in.Title, "title")
	v.Check(in.Type.IsValid(), "type is invalid")
	v.Required(in.FileURL, "fileUrl")
	return v.Err()
}

func (in CreateDocumentInput) Build(id string, now time.Time) Document {
	tags := slices.Clone(in.Tags)
	if tags == nil {
		tags = []string{}
	}
	return Document{
		ID:          id,
		Title:       in.Title,
		Type:        in.Type,
		PatientID:   in.PatientID,
		UploadedBy:  in.UploadedBy,
		UploadDate:  domain.DateOf(now),
		FileURL:     in.FileURL,
		Description: in.Description,
		Tags:        tags,
	}
}

type UpdateDocumentInput struct {
	Title       *string   `json:"title,omitempty"`
	Type        *Type     `json:"type,omitempty"`
	PatientID   *string   `json:"patientId,omitempty"`
	UploadedBy  *string   `json:"uploadedBy,omitempty"`
	FileURL     *string   `json:"fileUrl,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

func (in UpdateDocumentInput) Validate() error {
	var v domain.Validator
	if in.Title != nil {
		v.Required(*in.Title, "title")
	}
	if in.Type != nil {
		v.Check(in.Type.IsValid(), "type is invalid")
	}
	if in.FileURL != nil {
		v.Required(*in.FileURL, "fileUrl")
	}
	return v.Err()
}

func (in UpdateDocumentInput) Apply(d *Document, _ time.Time) {
	if in.Title != nil {
		d.Title = *in.Title
	}
	if in.Type != nil {
		d.Type = *in.Type
	}
	if in.PatientID != nil {
		d.PatientID = *in.PatientID
	}
	if in.UploadedBy != nil {
		d.UploadedBy = *in.UploadedBy
	}
	if in.FileURL != nil {
		d.FileURL = *in.FileURL
	}
	if in.Description != nil {
		d.Description = *in.Description
	}
	if in.Tags != nil {
		d.Tags = slices.Clone(*in.Tags)
	}
}

type Repository interface {
	domain.Repository[Document, CreateDocumentInput, UpdateDocumentInput]

	GetByPatient(patientID string) []Document
	GetByType(t Type) []Document
}
