package middleware

import (
	"io"
	"os"
	"testing"

	"github.com/olufemi424/cpa-automation/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Output: io.Discard})
	os.Exit(m.Run())
}
