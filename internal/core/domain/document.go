package domain

import (
	"errors"
	"time"
)

// DocumentType classifies an uploaded document.
type DocumentType string

const (
	DocW2        DocumentType = "W2"
	DocMisc      DocumentType = "MISC"
	DocNEC       DocumentType = "NEC"
	DocInt       DocumentType = "INT"
	DocDiv       DocumentType = "DIV"
	DocScheduleC DocumentType = "SCHEDULE_C"
	DocReceipt   DocumentType = "RECEIPT"
	DocInvoice   DocumentType = "INVOICE"
	DocStatement DocumentType = "STATEMENT"
	DocID        DocumentType = "ID"
	DocOther     DocumentType = "OTHER"
)

var ErrDocumentNotFound = errors.New("document not found")
var ErrFileTooLarge = errors.New("file size exceeds 10MB limit")
var ErrFileTypeNotAllowed = errors.New("file type not allowed")

// MaxUploadSize is the hard cap on uploaded file bytes.
const MaxUploadSize = 10 << 20

// allowedFileTypes is the upload content-type allow-list.
var allowedFileTypes = map[string]struct{}{
	"application/pdf":    {},
	"image/jpeg":         {},
	"image/jpg":          {},
	"image/png":          {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// AllowedFileType reports whether the given content type may be uploaded.
func AllowedFileType(contentType string) bool {
	_, ok := allowedFileTypes[contentType]
	return ok
}

// Document is an uploaded file attached to a client case.
type Document struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	ClientID     string       `json:"client_id" bson:"client_id"`
	FileName     string       `json:"file_name" bson:"file_name"`
	FileURL      string       `json:"file_url" bson:"file_url"`
	FileSize     int64        `json:"file_size" bson:"file_size"`
	FileType     string       `json:"file_type" bson:"file_type"`
	DocumentType DocumentType `json:"document_type" bson:"document_type"`
	Confidence   float64      `json:"confidence" bson:"confidence"`
	IsVerified   bool         `json:"is_verified" bson:"is_verified"`
	UploadedByID string       `json:"uploaded_by_id" bson:"uploaded_by_id"`
	UploadedAt   time.Time    `json:"uploaded_at" bson:"uploaded_at"`
}
