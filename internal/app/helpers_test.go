package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixedClock keeps lock headers deterministic across test runs.
var fixedClock = func() time.Time {
	return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
}

func newTestService() Service {
	service := NewService()
	service.Clock = fixedClock
	return service
}

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const testIndexSnapshot = `pip:
  flask:
    - "1.1.2"
    - "1.1.4"
    - "2.0.3"
  gunicorn:
    - "20.1.0"
  sqlalchemy:
    - "1.4.11"
    - "1.4.23"
  pyjwt:
    - "1.7.1"
apt:
  libpq5:
    - "13.4-0+deb11u1"
`
