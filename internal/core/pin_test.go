package core

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqlock/internal/types"
)

// stubIndex serves versions from a fixed map keyed by normalized name.
type stubIndex map[string][]string

func (s stubIndex) AvailableVersions(_ types.DependencyType, name string) ([]string, error) {
	return s[name], nil
}

func TestPinResolvesHighestCompatibleVersions(t *testing.T) {
	manifest := manifestFrom(
		"Flask>=1.1,<2.0",
		"gunicorn==20.1.0",
		"SQLAlchemy~=1.4.0",
	)
	index := stubIndex{
		"flask":      {"1.0.4", "1.1.2", "1.1.4", "2.0.3"},
		"gunicorn":   {"20.0.4", "20.1.0"},
		"sqlalchemy": {"1.3.24", "1.4.11", "1.4.23", "2.0.0"},
	}

	entries, err := NewPinner(index).Pin(context.Background(), manifest)
	require.NoError(t, err)

	want := []types.LockEntry{
		{Name: "flask", Version: "1.1.4", Type: types.DependencyTypePip},
		{Name: "gunicorn", Version: "20.1.0", Type: types.DependencyTypePip},
		{Name: "sqlalchemy", Version: "1.4.23", Type: types.DependencyTypePip},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("unexpected lock entries (-want +got):\n%s", diff)
	}
}

func TestPinRejectsEditableAndURLRequirements(t *testing.T) {
	_, err := NewPinner(stubIndex{}).Pin(context.Background(), manifestFrom("-e ./local/pkg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot pin")

	_, err = NewPinner(stubIndex{}).Pin(context.Background(), manifestFrom("mypkg @ https://example.com/mypkg.tar.gz"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot pin")
}

func TestPinRejectsDuplicates(t *testing.T) {
	index := stubIndex{"flask": {"1.1.2", "1.1.4"}}
	_, err := NewPinner(index).Pin(context.Background(), manifestFrom("flask==1.1.2", "Flask==1.1.4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate package flask")
}

func TestPinFailsWhenNothingCompatible(t *testing.T) {
	index := stubIndex{"flask": {"1.1.2"}}
	_, err := NewPinner(index).Pin(context.Background(), manifestFrom("flask>=2.0"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no compatible version")
}

func TestPinFailsWhenPackageUnknown(t *testing.T) {
	_, err := NewPinner(stubIndex{}).Pin(context.Background(), manifestFrom("leftpad==1.0"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no available versions")
}

func TestPinRequiresIndex(t *testing.T) {
	_, err := Pinner{}.Pin(context.Background(), manifestFrom("flask==1.1.2"))
	require.Error(t, err)
}
