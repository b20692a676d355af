package service

import (
	"strings"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// FilenameClassifier infers a document type from case-insensitive substring
// rules over the file name. The precedence order and confidence constants
// are a fixed public contract: first matching rule wins.
type FilenameClassifier struct{}

func NewFilenameClassifier() *FilenameClassifier {
	return &FilenameClassifier{}
}

func (FilenameClassifier) Classify(fileName string) (domain.DocumentType, float64) {
	name := strings.ToLower(fileName)

	if strings.Contains(name, "w2") || strings.Contains(name, "w-2") {
		return domain.DocW2, 0.95
	}

	if strings.Contains(name, "1099-misc") || strings.Contains(name, "1099_misc") {
		return domain.DocMisc, 0.95
	}
	if strings.Contains(name, "1099-nec") || strings.Contains(name, "1099_nec") {
		return domain.DocNEC, 0.95
	}
	if strings.Contains(name, "1099-int") || strings.Contains(name, "1099_int") {
		return domain.DocInt, 0.95
	}
	if strings.Contains(name, "1099-div") || strings.Contains(name, "1099_div") {
		return domain.DocDiv, 0.95
	}
	// Generic 1099 defaults to MISC at lower confidence.
	if strings.Contains(name, "1099") {
		return domain.DocMisc, 0.85
	}

	if strings.Contains(name, "schedule c") || strings.Contains(name, "schedulec") || strings.Contains(name, "schedule_c") {
		return domain.DocScheduleC, 0.9
	}

	if strings.Contains(name, "receipt") || strings.Contains(name, "expense") {
		return domain.DocReceipt, 0.85
	}

	if strings.Contains(name, "invoice") {
		return domain.DocInvoice, 0.85
	}

	if strings.Contains(name, "bank") || strings.Contains(name, "statement") || strings.Contains(name, "account") {
		return domain.DocStatement, 0.8
	}

	if strings.Contains(name, "id") || strings.Contains(name, "license") || strings.Contains(name, "passport") {
		return domain.DocID, 0.85
	}

	return domain.DocOther, 0.5
}
