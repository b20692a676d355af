package ports

import (
	"context"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// FileStore persists uploaded document bytes and returns a durable
// reference. Size and content-type checks happen before Save is called.
type FileStore interface {
	Save(ctx context.Context, clientID, fileName string, data []byte) (string, error)
}

// DocumentClassifier infers a document type from a file name, returning the
// type and a confidence in [0,1].
type DocumentClassifier interface {
	Classify(fileName string) (domain.DocumentType, float64)
}
