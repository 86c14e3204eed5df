package service

import (
	"strings"

	"github.com/okian/tourplot/internal/adapters/dataset"
	"github.com/okian/tourplot/internal/adapters/render/vector"
	"github.com/okian/tourplot/internal/config"
	"github.com/okian/tourplot/internal/domain/chart"
	"github.com/okian/tourplot/pkg/logger"
)

// SourceFor picks the dataset source named by cfg: a local file when
// dataset_file is set, the remote URL otherwise.
func SourceFor(cfg *config.Config, log logger.Logger) dataset.Source {
	if strings.TrimSpace(cfg.DatasetFile) != "" {
		return dataset.NewFileSource(cfg.DatasetFile)
	}
	return dataset.NewHTTPSource(cfg.DatasetURL,
		dataset.WithTimeout(cfg.FetchTimeout()),
		dataset.WithLogger(log.Named("dataset")),
	)
}

// FromConfig builds a Service from loaded configuration. Extra options are
// applied last.
func FromConfig(cfg *config.Config, log logger.Logger, extra ...Option) *Service {
	builder := chart.NewBuilder(
		chart.WithSize(float64(cfg.ChartWidth), float64(cfg.ChartHeight)),
		chart.WithPadding(float64(cfg.ChartPadding)),
		chart.WithMarkRadius(float64(cfg.MarkRadius)),
		chart.WithColors(cfg.AllegationColor, cfg.NeutralColor),
	)

	opts := []Option{
		WithSource(SourceFor(cfg, log)),
		WithBuilder(builder),
		WithVectorRenderer(vector.New(vector.WithMinify(cfg.Minify))),
		WithCacheTTL(cfg.CacheTTL()),
		WithRefreshInterval(cfg.RefreshInterval()),
		WithLogger(log.Named("service")),
	}
	return New(append(opts, extra...)...)
}
