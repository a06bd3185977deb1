// Package viz persists extracted scene batches as browsable artifacts.
package viz

import (
	"github.com/avsim/scenario-extract/extract"
	"github.com/avsim/scenario-extract/util"
)

// ResultSink accepts a packed scene batch and writes it to a
// destination. Implementations own their destination layout.
type ResultSink interface {
	Accept(batch *extract.SceneBatch, dest string) error
}

// GobSink serializes the whole batch into a single gob file at dest.
type GobSink struct{}

var _ ResultSink = GobSink{}

func (GobSink) Accept(batch *extract.SceneBatch, dest string) error {
	return util.SaveGob(dest, batch)
}

// LoadBatch reads a batch previously written by GobSink.
func LoadBatch(path string) (*extract.SceneBatch, error) {
	var batch extract.SceneBatch
	if err := util.LoadGob(path, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}
