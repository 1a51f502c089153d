package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLog(t *testing.T) {
	log := NewRunLog(2)
	assert.Empty(t, log.Recent())

	log.Add(&SourceReport{Source: "first"})
	log.Add(&SourceReport{Source: "second"})
	log.Add(&SourceReport{Source: "third"})
	log.Add(nil)

	recent := log.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Source)
	assert.Equal(t, "second", recent[1].Source)
}
