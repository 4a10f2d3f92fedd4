package extent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryInsertOrdersByBegin(t *testing.T) {
	tr := New(1000)
	require.NoError(t, tr.TryInsert(500, 600))
	require.NoError(t, tr.TryInsert(0, 18))
	require.NoError(t, tr.TryInsert(200, 300))

	blocks := tr.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, uint32(0), blocks[0].Begin)
	assert.Equal(t, uint32(200), blocks[1].Begin)
	assert.Equal(t, uint32(500), blocks[2].Begin)
}

func TestTryInsertRejectsOverlap(t *testing.T) {
	tr := New(1000)
	require.NoError(t, tr.TryInsert(0, 100))
	assert.ErrorIs(t, tr.TryInsert(50, 150), ErrOverlappingData)
	assert.ErrorIs(t, tr.TryInsert(99, 101), ErrOverlappingData)
}

func TestTryInsertAllowsAdjacent(t *testing.T) {
	tr := New(1000)
	require.NoError(t, tr.TryInsert(0, 100))
	require.NoError(t, tr.TryInsert(100, 200))
}

func TestTryInsertRejectsPastFileSize(t *testing.T) {
	tr := New(100)
	assert.ErrorIs(t, tr.TryInsert(50, 101), ErrUnexpectedEOF)
}

func TestIsReserved(t *testing.T) {
	tr := New(1000)
	require.NoError(t, tr.TryInsert(10, 20))
	assert.True(t, tr.IsReserved(15, 25))
	assert.False(t, tr.IsReserved(20, 30))
}

func TestFirstBeyond(t *testing.T) {
	tr := New(1000)
	require.NoError(t, tr.TryInsert(0, 18))
	require.NoError(t, tr.TryInsert(800, 826))

	assert.Equal(t, uint32(800), tr.FirstBeyond(18))
	assert.Equal(t, uint32(1000), tr.FirstBeyond(900))
}
