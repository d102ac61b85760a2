package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lotr-ingest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := OpenJournal(context.Background(), filepath.Join(t.TempDir(), "nested", "reports.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournal_RecordAndList(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	j.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	id1, err := j.Record(ctx, "op-1", model.SummaryReport{
		Status:        model.StatusSuccess,
		Kind:          model.ReportCharacterIngest,
		IngestedCount: model.IntPtr(10),
		TotalRecords:  model.IntPtr(10),
		Timestamp:     "2024-03-01T12:00:01.000Z",
	})
	require.NoError(t, err)
	id2, err := j.Record(ctx, "op-2", model.SummaryReport{
		Status: model.StatusError,
		Kind:   model.ReportWipe,
		Error:  "Failed to wipe data",
	})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	got, err := j.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, id2, got[0].ID)
	assert.Equal(t, model.ReportWipe, got[0].Report.Kind)
	assert.Equal(t, "Failed to wipe data", got[0].Report.Error)
	assert.Equal(t, "op-1", got[1].OpID)
	assert.Equal(t, 10, model.Deref(got[1].Report.TotalRecords))
	assert.Nil(t, got[1].Report.TotalQuotes)
	assert.Equal(t, base.Add(time.Second), got[1].RecordedAt)

	limited, err := j.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, id2, limited[0].ID)
}

func TestJournal_ReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reports.sqlite")

	j, err := OpenJournal(ctx, path)
	require.NoError(t, err)
	_, err = j.Record(ctx, "", model.SummaryReport{Status: model.StatusSuccess, Kind: model.ReportQuoteIngest})
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = OpenJournal(ctx, path)
	require.NoError(t, err)
	defer j.Close()
	got, err := j.List(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.ReportQuoteIngest, got[0].Report.Kind)
}

func TestOpenJournal_RequiresPath(t *testing.T) {
	_, err := OpenJournal(context.Background(), " ")
	assert.Error(t, err)
}
