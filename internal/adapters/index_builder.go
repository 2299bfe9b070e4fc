package adapters

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"reqlock/internal/core"
	"reqlock/internal/ports"
	"reqlock/internal/shared"
	"reqlock/internal/types"
)

type IndexBuilderAdapter struct{}

type IndexWriterAdapter struct{}

const defaultFetchWorkers = 4
const defaultHTTPTimeout = 60 * time.Second
const defaultHTTPRetries = 3
const defaultHTTPRetryDelay = 200 * time.Millisecond
const maxHTTPRetryDelay = 2 * time.Second

type httpRetryConfig struct {
	timeout   time.Duration
	retries   int
	baseDelay time.Duration
}

func normalizeHTTPConfig(timeoutSec int, retries int, delayMs int) httpRetryConfig {
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	retryCount := retries
	if retryCount <= 0 {
		retryCount = defaultHTTPRetries
	}
	baseDelay := time.Duration(delayMs) * time.Millisecond
	if baseDelay <= 0 {
		baseDelay = defaultHTTPRetryDelay
	}
	return httpRetryConfig{
		timeout:   timeout,
		retries:   retryCount,
		baseDelay: baseDelay,
	}
}

func NewIndexBuilderAdapter() IndexBuilderAdapter {
	return IndexBuilderAdapter{}
}

func NewIndexWriterAdapter() IndexWriterAdapter {
	return IndexWriterAdapter{}
}

func (a IndexBuilderAdapter) Build(ctx context.Context, request ports.IndexBuildRequest) (types.IndexSnapshotFile, error) {
	index := types.IndexSnapshotFile{
		Pip: map[string][]string{},
		Apt: map[string][]string{},
	}
	if len(request.PipPackages) > 0 {
		pipIndex := strings.TrimSpace(request.PipIndexURL)
		if pipIndex == "" {
			return types.IndexSnapshotFile{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("pip index URL is required")
		}
		httpCfg := normalizeHTTPConfig(request.HTTPTimeoutSec, request.HTTPRetries, request.HTTPRetryDelayMs)
		pip, err := buildPipIndex(ctx, pipIndex, request.PipPackages, request.Workers, httpCfg)
		if err != nil {
			return types.IndexSnapshotFile{}, err
		}
		index.Pip = pip
	}
	if path := strings.TrimSpace(request.AptPackagesFile); path != "" {
		apt, err := readAptPackagesFile(path)
		if err != nil {
			return types.IndexSnapshotFile{}, err
		}
		index.Apt = apt
	}
	return index, nil
}

func (a IndexWriterAdapter) Write(path string, index types.IndexSnapshotFile) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	data, err := yaml.Marshal(index)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal index snapshot").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create index snapshot directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write index snapshot").
			WithCause(err)
	}
	return nil
}

// pypiProjectResponse is the subset of the PyPI JSON API response the
// builder needs: the releases map keys are the published versions.
type pypiProjectResponse struct {
	Releases map[string]json.RawMessage `json:"releases"`
}

func buildPipIndex(ctx context.Context, indexURL string, packages []string, workers int, httpCfg httpRetryConfig) (map[string][]string, error) {
	if workers <= 0 {
		workers = defaultFetchWorkers
	}
	client := &http.Client{Timeout: httpCfg.timeout}
	base := strings.TrimRight(indexURL, "/")

	var mu sync.Mutex
	result := map[string][]string{}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, name := range shared.UniqueStrings(packages) {
		group.Go(func() error {
			normalized := shared.NormalizeName(name)
			url := fmt.Sprintf("%s/pypi/%s/json", base, normalized)
			versions, err := fetchPipVersions(ctx, client, url, httpCfg)
			if err != nil {
				return err
			}
			ordered := core.SortVersions(types.DependencyTypePip, versions)
			mu.Lock()
			result[normalized] = ordered
			mu.Unlock()
			log.Debug().Str("package", normalized).Int("versions", len(ordered)).Msg("fetched pip versions")
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func fetchPipVersions(ctx context.Context, client *http.Client, url string, httpCfg httpRetryConfig) ([]string, error) {
	var lastErr error
	delay := httpCfg.baseDelay
	for attempt := 0; attempt <= httpCfg.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
			if delay > maxHTTPRetryDelay {
				delay = maxHTTPRetryDelay
			}
		}
		versions, err := fetchPipVersionsOnce(ctx, client, url)
		if err == nil {
			return versions, nil
		}
		lastErr = err
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to fetch package versions").
		WithCause(lastErr)
}

func fetchPipVersionsOnce(ctx context.Context, client *http.Client, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, shared.HTTPStatusError(resp.StatusCode, url)
	}
	var payload pypiProjectResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(payload.Releases))
	for version := range payload.Releases {
		versions = append(versions, version)
	}
	return versions, nil
}

// readAptPackagesFile extracts Package/Version pairs from a Debian
// Packages control file.
func readAptPackagesFile(path string) (map[string][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("apt Packages file not found").
			WithCause(err)
	}
	defer file.Close()

	result := map[string][]string{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	current := ""
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "Package:"):
			current = strings.TrimSpace(strings.TrimPrefix(line, "Package:"))
		case strings.HasPrefix(line, "Version:") && current != "":
			version := strings.TrimSpace(strings.TrimPrefix(line, "Version:"))
			result[current] = append(result[current], version)
		case strings.TrimSpace(line) == "":
			current = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read apt Packages file").
			WithCause(err)
	}
	for name, versions := range result {
		result[name] = core.SortVersions(types.DependencyTypeApt, shared.UniqueStrings(versions))
	}
	return result, nil
}

var _ ports.IndexBuilderPort = IndexBuilderAdapter{}
var _ ports.IndexWriterPort = IndexWriterAdapter{}
