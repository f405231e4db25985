package npm

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"resty.dev/v3"

	"github.com/shinji-kodama/bootstrap-tool/internal/ctxlog"
	"github.com/shinji-kodama/bootstrap-tool/internal/model"
	"github.com/shinji-kodama/bootstrap-tool/internal/shell"
)

// Registry answers whether a package name is published.
//
// Exists never returns an error: any failure of the probe, whether the
// package is unknown, the network is down or npm crashed, reads as "does
// not exist", which the dependency prompt turns into a retry.
type Registry interface {
	Exists(ctx context.Context, name string) bool
}

// Missing probes every package in order and returns the ones that do not
// exist, preserving input order. An empty input yields an empty result.
func Missing(ctx context.Context, reg Registry, packages model.PackageList) model.PackageList {
	missing := model.PackageList{}
	for _, pkg := range packages {
		if !reg.Exists(ctx, pkg) {
			missing = append(missing, pkg)
		}
	}
	return missing
}

// CLIRegistry probes with `npm view <name>`, run quietly so the probe's
// output never reaches the terminal.
type CLIRegistry struct {
	runner shell.Runner
	dir    string
}

// NewCLIRegistry creates a CLIRegistry that runs npm in dir, so a project
// .npmrc (custom registry, auth) applies to the probe.
func NewCLIRegistry(runner shell.Runner, dir string) *CLIRegistry {
	return &CLIRegistry{runner: runner, dir: dir}
}

// Exists reports whether `npm view` succeeds for name.
func (r *CLIRegistry) Exists(ctx context.Context, name string) bool {
	_, err := r.runner.Run(ctx, r.dir, shell.Options{Quiet: true}, "npm", "view", name)
	if err != nil {
		ctxlog.FromContext(ctx).Debug("npm view failed", "package", name, "error", err)
		return false
	}
	return true
}

// HTTPRegistry probes a registry over HTTP: GET <base>/<name> answers 200
// for published packages.
type HTTPRegistry struct {
	baseURL string
	client  *resty.Client
}

// NewHTTPRegistry creates an HTTPRegistry for baseURL, e.g.
// "https://registry.npmjs.org". Call Close when done.
func NewHTTPRegistry(baseURL string) *HTTPRegistry {
	return &HTTPRegistry{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  resty.New(),
	}
}

// Exists reports whether the registry document for name can be fetched.
func (r *HTTPRegistry) Exists(ctx context.Context, name string) bool {
	logger := ctxlog.FromContext(ctx)

	res, err := r.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.npm.install-v1+json").
		Get(r.PackageURL(name))
	if err != nil {
		logger.Debug("registry request failed", "package", name, "error", err)
		return false
	}

	logger.Debug("registry responded", "package", name, "status", res.StatusCode())
	return res.StatusCode() == http.StatusOK
}

// PackageURL returns the registry document URL for name. Scoped names keep
// their leading "@" while the separating slash is escaped, as the public
// registry expects.
func (r *HTTPRegistry) PackageURL(name string) string {
	return r.baseURL + "/" + url.PathEscape(name)
}

// Close releases the underlying HTTP client.
func (r *HTTPRegistry) Close() error {
	return r.client.Close()
}
