// Package tour runs the walkthrough: an ordered list of small lessons that
// share one Session.
package tour

import (
	"io"

	"github.com/YuminosukeSato/primer/basics"
	"github.com/YuminosukeSato/primer/datasets"
	"github.com/YuminosukeSato/primer/frame"
	"github.com/YuminosukeSato/primer/internal/config"
	"github.com/YuminosukeSato/primer/linear"
	"github.com/YuminosukeSato/primer/pkg/log"
	"github.com/YuminosukeSato/primer/stats"
)

// Session carries the values lessons reuse: the dataset, its frame, the
// author list and the fitted models.
type Session struct {
	Out    io.Writer
	Logger log.Logger
	Config *config.Config

	Dataset *datasets.Bunch
	Frame   *frame.Frame
	Authors *basics.Authors

	Model   *linear.LinearRegression
	Results *stats.Results

	// Charts holds the paths of the figures written so far.
	Charts []string
}

// NewSession returns a Session writing to out. A nil cfg means defaults and
// a nil logger discards records.
func NewSession(out io.Writer, cfg *config.Config, logger log.Logger) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Session{
		Out:    out,
		Logger: logger,
		Config: cfg,
	}
}

// LoadDataset loads the diabetes data once, from Config.DataFile when set.
func (s *Session) LoadDataset() (*datasets.Bunch, error) {
	if s.Dataset != nil {
		return s.Dataset, nil
	}

	opts := []datasets.Option{datasets.WithScaled(s.Config.Scaled)}
	var (
		b   *datasets.Bunch
		err error
	)
	if s.Config.DataFile != "" {
		b, err = datasets.LoadDiabetesFile(s.Config.DataFile, opts...)
	} else {
		b, err = datasets.LoadDiabetes(opts...)
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Info("dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.SourceKey, b.Source,
		log.SamplesKey, b.Target.Len(),
	)
	s.Dataset = b
	return b, nil
}

// LoadFrame builds the feature frame from the dataset once.
func (s *Session) LoadFrame() (*frame.Frame, error) {
	if s.Frame != nil {
		return s.Frame, nil
	}
	b, err := s.LoadDataset()
	if err != nil {
		return nil, err
	}
	f, err := frame.FromMatrix(b.Data, b.FeatureNames)
	if err != nil {
		return nil, err
	}
	s.Frame = f
	return f, nil
}
