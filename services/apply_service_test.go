package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingRunner struct {
	stops int
}

func (r *countingRunner) Stop() error {
	r.stops++
	return nil
}

func TestApplyServiceCloseIsIdempotent(t *testing.T) {
	runner := &countingRunner{}
	svc := NewApplyService(nil, nil, "", "")
	svc.pw = runner

	svc.Close()
	svc.Close()
	svc.Close()

	assert.Equal(t, 1, runner.stops)
}

func TestApplyServiceCloseWithoutStart(t *testing.T) {
	svc := NewApplyService(nil, nil, "", "")
	assert.NotPanics(t, func() {
		svc.Close()
		svc.Close()
	})
}

func TestClosePageToleratesNilPage(t *testing.T) {
	assert.NotPanics(t, func() {
		closePage(nil)
	})
}
