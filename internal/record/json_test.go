package record

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalKeepsInsertionOrder(t *testing.T) {
	v := Mapping(
		KV("zeta", 1),
		KV("alpha", "two"),
		Nested("mid", Sequence(Mapping(KV("b", 2.5), KV("a", nil)))),
	)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"two","mid":[{"b":2.5,"a":null}]}`, string(b))
}

func TestMarshalIndent(t *testing.T) {
	v := Mapping(KV("a", 1), Nested("b", Sequence(Scalar("x"))))

	b, err := json.MarshalIndent(v, "", "    ")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1,\n    \"b\": [\n        \"x\"\n    ]\n}", string(b))
}

func TestMarshalEmptyContainers(t *testing.T) {
	b, err := json.Marshal(Mapping(Nested("m", Mapping()), Nested("s", Sequence())))
	require.NoError(t, err)
	assert.Equal(t, `{"m":{},"s":[]}`, string(b))
}

func TestUnmarshalRoundTrip(t *testing.T) {
	in := Mapping(
		KV("Timestamp", "2024-05-01T10:00:00.000000"),
		Nested("Memory Info", Mapping(KV("Total (GB)", 15.62), KV("Percentage (%)", 41.3))),
		Nested("CPU Info", Mapping(
			KV("Physical cores", int64(4)),
			Nested("CPU Usage per Core (%)", Floats([]float64{0.5, 12.25})),
		)),
		Nested("GPU Info", Sequence(Mapping(KV("Info", "No GPUs detected")))),
		KV("flag", false),
	)

	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Value
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestWholeFloatsRoundTrip(t *testing.T) {
	in := Mapping(
		Nested("Memory Info", Mapping(
			KV("Total (GB)", 16.0),
			KV("Used (GB)", 6.0),
			KV("Percentage (%)", 38.0),
		)),
		Nested("CPU Usage per Core (%)", Floats([]float64{0, 100})),
		KV("Physical cores", 4),
		KV("Huge", 1e21),
	)

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `{"Memory Info":{"Total (GB)":16.0,"Used (GB)":6.0,"Percentage (%)":38.0},`+
		`"CPU Usage per Core (%)":[0.0,100.0],"Physical cores":4,"Huge":1000000000000000000000.0}`, string(b))

	var out Value
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	used, _ := out.Get("Memory Info")
	u, _ := used.Get("Used (GB)")
	assert.Equal(t, 6.0, u.Interface())
}

func TestMarshalRejectsNonFinite(t *testing.T) {
	_, err := json.Marshal(Mapping(KV("x", math.Inf(1))))
	assert.Error(t, err)
}

func TestScalarNormalizesNumbers(t *testing.T) {
	assert.Equal(t, int64(7), Scalar(7).Interface())
	assert.Equal(t, int64(7), Scalar(uint32(7)).Interface())
	assert.Equal(t, uint64(math.MaxUint64), Scalar(uint64(math.MaxUint64)).Interface())
	assert.Equal(t, 0.5, Scalar(float32(0.5)).Interface())
	assert.Equal(t, "7", Scalar("7").Interface())
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{6, "6.0"},
		{0, "0.0"},
		{-2, "-2.0"},
		{15.62, "15.62"},
		{1e21, "1000000000000000000000.0"},
		{math.Inf(1), "+Inf"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in))
	}
}

func TestUnmarshalNumbers(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"i": 3, "f": 3.5, "w": 3.0, "e": 1e3}`), &v))

	i, _ := v.Get("i")
	f, _ := v.Get("f")
	w, _ := v.Get("w")
	e, _ := v.Get("e")
	assert.Equal(t, int64(3), i.Interface())
	assert.Equal(t, 3.5, f.Interface())
	assert.Equal(t, 3.0, w.Interface())
	assert.Equal(t, 1000.0, e.Interface())
}

func TestUnmarshalRejectsTrailingData(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{} {}`), &v))
}

func TestLookups(t *testing.T) {
	v := Mapping(Nested("list", Sequence(Scalar("first"))), KV("k", "v"))

	assert.True(t, v.Has("k"))
	assert.False(t, v.Has("missing"))
	assert.Equal(t, 2, v.Len())

	list, ok := v.Get("list")
	require.True(t, ok)
	assert.Equal(t, KindSequence, list.Kind())

	first, ok := list.Index(0)
	require.True(t, ok)
	assert.Equal(t, "first", first.Interface())

	_, ok = list.Index(1)
	assert.False(t, ok)

	assert.Equal(t, map[string]any{"list": []any{"first"}, "k": "v"}, v.Plain())
}
