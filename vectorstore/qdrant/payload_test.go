package qdrant

import (
	"testing"

	pb "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadConversion(t *testing.T) {
	metadata := map[string]any{
		"name":      "Brownie",
		"price":     120.0,
		"in_stock":  true,
		"tags":      []any{"chocolate", "dessert"},
		"specs":     map[string]any{"weight": "250g"},
		"nil_field": nil,
	}

	payload := toPayload(metadata)
	require.Len(t, payload, len(metadata))
	assert.Equal(t, "Brownie", payload["name"].GetStringValue())
	assert.Equal(t, 120.0, payload["price"].GetDoubleValue())
	assert.True(t, payload["in_stock"].GetBoolValue())

	back := fromPayload(payload)
	assert.Equal(t, "Brownie", back["name"])
	assert.Equal(t, 120.0, back["price"])
	assert.Equal(t, true, back["in_stock"])
	assert.Equal(t, []any{"chocolate", "dessert"}, back["tags"])
	assert.Equal(t, map[string]any{"weight": "250g"}, back["specs"])
	assert.Nil(t, back["nil_field"])
}

func TestToValue_Integers(t *testing.T) {
	assert.Equal(t, int64(7), toValue(7).GetIntegerValue())
	assert.Equal(t, int64(7), toValue(int64(7)).GetIntegerValue())
}

func TestToValue_UnsupportedTypesStringify(t *testing.T) {
	v := toValue(struct{ X int }{X: 1})
	assert.NotEmpty(t, v.GetStringValue())
}

func TestPointID(t *testing.T) {
	id := pointID("12345")
	num, ok := id.GetPointIdOptions().(*pb.PointId_Num)
	require.True(t, ok)
	assert.Equal(t, uint64(12345), num.Num)

	id = pointID("not-a-number")
	_, ok = id.GetPointIdOptions().(*pb.PointId_Uuid)
	assert.True(t, ok)
}
