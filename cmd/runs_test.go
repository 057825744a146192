package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/kg-ensemble/internal/model"
)

func TestComputeRunStats(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	runs := []model.Run{
		{
			Status:    model.RunStatusComplete,
			Summary:   &model.RunSummary{Documents: 5, Entities: 40, Triples: 12},
			CreatedAt: base,
			UpdatedAt: base.Add(10 * time.Second),
		},
		{
			Status:    model.RunStatusComplete,
			Summary:   &model.RunSummary{Documents: 3, Entities: 20, Triples: 8},
			CreatedAt: base,
			UpdatedAt: base.Add(20 * time.Second),
		},
		{Status: model.RunStatusFailed, CreatedAt: base, UpdatedAt: base},
		{Status: model.RunStatusRunning, CreatedAt: base, UpdatedAt: base},
	}

	s := computeRunStats(runs)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Complete)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.Other)
	assert.Equal(t, 8, s.Documents)
	assert.Equal(t, 60, s.Entities)
	assert.Equal(t, 20, s.Triples)
	assert.InDelta(t, 15.0, s.AvgDurSecs, 0.001)
}

func TestComputeRunStats_Empty(t *testing.T) {
	s := computeRunStats(nil)

	assert.Zero(t, s.Total)
	assert.Zero(t, s.AvgDurSecs)
}

func TestFormatRunsList(t *testing.T) {
	runs := []model.Run{
		{
			ID:        "0d9c1c7e-9f1a-4a7e-8f3a-1b2c3d4e5f60",
			Manifest:  "extractors.yaml",
			Status:    model.RunStatusComplete,
			Summary:   &model.RunSummary{Documents: 7},
			CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2026, 8, 1, 12, 0, 42, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "0d9c1c7e")
	assert.NotContains(t, out, "0d9c1c7e-9f1a")
	assert.Contains(t, out, "extractors.yaml")
	assert.Contains(t, out, "complete")
	assert.Contains(t, out, "7")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "0d9c1c7e", truncateID("0d9c1c7e-9f1a-4a7e"))
	assert.Equal(t, "short", truncateID("short"))
}
