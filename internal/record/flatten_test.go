package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenNestedMapping(t *testing.T) {
	v := Mapping(
		Nested("A", Mapping(KV("B", 1), KV("C", 2))),
	)

	assert.Equal(t, []Pair{
		{Key: "A: B", Value: int64(1)},
		{Key: "A: C", Value: int64(2)},
	}, Flatten(v))
}

func TestFlattenScalarSequence(t *testing.T) {
	v := Mapping(
		Nested("A", Sequence(Scalar(1), Scalar(2))),
	)

	assert.Equal(t, []Pair{
		{Key: "A [0]", Value: int64(1)},
		{Key: "A [1]", Value: int64(2)},
	}, Flatten(v))
}

func TestFlattenAlreadyFlat(t *testing.T) {
	v := Mapping(KV("x", "one"), KV("y", 2.5), KV("z", nil))

	got := Flatten(v)
	require.Len(t, got, 3)
	for i, f := range v.Fields() {
		assert.Equal(t, f.Key, got[i].Key)
		assert.Equal(t, f.Value.Interface(), got[i].Value)
	}

	// flattening the flattened form again changes nothing
	again := make([]Field, len(got))
	for i, p := range got {
		again[i] = KV(p.Key, p.Value)
	}
	assert.Equal(t, got, Flatten(Mapping(again...)))
}

func TestFlattenSequenceOfMappings(t *testing.T) {
	v := Mapping(
		KV("Version", "1.0.0"),
		Nested("Disk Info", Sequence(
			Mapping(KV("Device", "/dev/sda1"), KV("Total Size (GB)", 100.5)),
			Mapping(KV("Device", "/dev/sdb1"), KV("Error", "Failed to read partition: denied")),
		)),
		Nested("CPU Info", Mapping(
			Nested("CPU Usage per Core (%)", Floats([]float64{1.5, 3})),
		)),
	)

	assert.Equal(t, []Pair{
		{Key: "Version", Value: "1.0.0"},
		{Key: "Disk Info [0]: Device", Value: "/dev/sda1"},
		{Key: "Disk Info [0]: Total Size (GB)", Value: 100.5},
		{Key: "Disk Info [1]: Device", Value: "/dev/sdb1"},
		{Key: "Disk Info [1]: Error", Value: "Failed to read partition: denied"},
		{Key: "CPU Info: CPU Usage per Core (%) [0]", Value: 1.5},
		{Key: "CPU Info: CPU Usage per Core (%) [1]", Value: 3.0},
	}, Flatten(v))
}

func TestFlattenEmptyContainers(t *testing.T) {
	v := Mapping(
		Nested("empty map", Mapping()),
		Nested("empty list", Sequence()),
		KV("leaf", true),
	)

	assert.Equal(t, []Pair{{Key: "leaf", Value: true}}, Flatten(v))
}

func TestFlattenNestedSequences(t *testing.T) {
	v := Mapping(
		Nested("grid", Sequence(
			Sequence(Scalar("a"), Scalar("b")),
		)),
	)

	assert.Equal(t, []Pair{
		{Key: "grid [0] [0]", Value: "a"},
		{Key: "grid [0] [1]", Value: "b"},
	}, Flatten(v))
}
