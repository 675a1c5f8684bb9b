package genemanifest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	m.RecordIngest(10, 7, 3, time.Second, nil)
	m.RecordIngest(5, 0, 5, time.Second, errors.New("no valid records"))
	m.RecordLoad(time.Millisecond, nil)
	m.RecordQuery(2, 4, 10*time.Millisecond, nil)
	m.RecordQuery(1, 0, 30*time.Millisecond, errors.New("bad"))
	m.RecordFetch(1024, time.Second, nil)

	s := m.GetStats()
	assert.EqualValues(t, 2, s.IngestCount)
	assert.EqualValues(t, 1, s.IngestErrors)
	assert.EqualValues(t, 15, s.IngestLines)
	assert.EqualValues(t, 7, s.IngestValid)
	assert.EqualValues(t, 8, s.IngestInvalid)
	assert.EqualValues(t, 1, s.LoadCount)
	assert.EqualValues(t, 2, s.QueryCount)
	assert.EqualValues(t, 1, s.QueryErrors)
	assert.EqualValues(t, 4, s.QueryResults)
	assert.EqualValues(t, (20 * time.Millisecond).Nanoseconds(), s.QueryAvgNanos)
	assert.EqualValues(t, 1024, s.FetchBytes)
}

func TestMetricsOrNoop(t *testing.T) {
	assert.Equal(t, NoopMetricsCollector{}, MetricsOrNoop(nil))

	m := &BasicMetricsCollector{}
	assert.Same(t, m, MetricsOrNoop(m))
}
