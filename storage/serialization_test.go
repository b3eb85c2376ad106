package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/solvent/embedding"
)

func TestMarshalUnmarshalRecord(t *testing.T) {
	tests := []struct {
		name   string
		record *embedding.Record
	}{
		{
			name: "record with vector",
			record: &embedding.Record{
				EntryID:     "voc_post_purchase_surveys",
				ContentHash: 0xDEADBEEF,
				Vector:      []float32{0.1, 0.2, 0.3, 0.4, 0.5},
			},
		},
		{
			name: "record without vector",
			record: &embedding.Record{
				EntryID:     "empty_vector",
				ContentHash: 42,
			},
		},
		{
			name: "record with max hash",
			record: &embedding.Record{
				EntryID:     "max",
				ContentHash: 18446744073709551615,
				Vector:      []float32{1.0},
			},
		},
		{
			name: "record with unicode id",
			record: &embedding.Record{
				EntryID:     "entrée_ünï",
				ContentHash: 7,
				Vector:      []float32{-0.5, 0.5},
			},
		},
		{
			name: "record with large vector",
			record: &embedding.Record{
				EntryID:     "large",
				ContentHash: 99,
				Vector:      make([]float32, 768),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalRecord(tt.record)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalRecord(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.record.EntryID, decoded.EntryID)
			assert.Equal(t, tt.record.ContentHash, decoded.ContentHash)
			if len(tt.record.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.record.Vector, decoded.Vector)
			}
		})
	}
}

func TestUnmarshalRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"truncated data", MarshalRecord(&embedding.Record{
			EntryID:     "truncated",
			ContentHash: 1,
			Vector:      []float32{0.1, 0.2, 0.3},
		})[:8]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalRecord(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalMeta(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	meta := &embedding.Meta{
		Model:      "embeddinggemma",
		Dimensions: 768,
		EntryCount: 42,
		BuiltAt:    now,
	}

	data := MarshalMeta(meta)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalMeta(data)
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.Equal(t, meta.Model, decoded.Model)
	assert.Equal(t, meta.Dimensions, decoded.Dimensions)
	assert.Equal(t, meta.EntryCount, decoded.EntryCount)
	assert.True(t, meta.BuiltAt.Equal(decoded.BuiltAt))
}

func TestUnmarshalMeta_Invalid(t *testing.T) {
	_, err := UnmarshalMeta([]byte{0xFF, 0xFF, 0xFF})
	assert.Error(t, err)
}
