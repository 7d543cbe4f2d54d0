package export

import (
	"context"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2/log"

	"route-analytics-service/internal/routes/core/domain"
)

type RouteFetcher interface {
	FetchRoutes(ctx context.Context, q domain.RouteQuery) ([]domain.Route, error)
}

type Summary struct {
	Rows int
	Path string
	// Key is empty when nothing was uploaded.
	Key string
}

type Exporter struct {
	routes   RouteFetcher
	uploader *Uploader
	prefix   string
}

// NewExporter returns an exporter writing local files. uploader may be nil.
func NewExporter(routes RouteFetcher, uploader *Uploader, prefix string) *Exporter {
	return &Exporter{routes: routes, uploader: uploader, prefix: prefix}
}

// Export writes every route matching q to path and uploads the file when an
// uploader is configured.
func (e *Exporter) Export(ctx context.Context, q domain.RouteQuery, path string) (Summary, error) {
	routes, err := e.routes.FetchRoutes(ctx, q)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch routes: %w", err)
	}

	if err := WriteRoutesFile(path, routes); err != nil {
		return Summary{}, err
	}
	sum := Summary{Rows: len(routes), Path: path}
	log.Infow("routes exported", "rows", sum.Rows, "path", path)

	if e.uploader == nil {
		return sum, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return sum, fmt.Errorf("reopen export: %w", err)
	}
	defer func() { _ = file.Close() }()

	key := ObjectKey(e.prefix, q.From, q.To)
	if err := e.uploader.Upload(ctx, key, file); err != nil {
		return sum, err
	}
	sum.Key = key
	log.Infow("export uploaded", "bucket", e.uploader.Bucket(), "key", key)
	return sum, nil
}
