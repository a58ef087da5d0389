package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewCode(t *testing.T) {
	tests := []struct {
		in   string
		want Code
	}{
		{"40", "40"},
		{" 40 ", "40"},
		{"0040", "40"},
		{"000", "0"},
		{"A-12", "A-12"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NewCode(tt.in))
		})
	}
}

func TestCode_UnmarshalJSON_NumberAndStringAreEqual(t *testing.T) {
	var payload struct {
		A Code `json:"a"`
		B Code `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1000, "b": "1000"}`), &payload))

	assert.Equal(t, payload.A, payload.B)

	out, err := json.Marshal(payload.A)
	require.NoError(t, err)
	assert.JSONEq(t, `"1000"`, string(out))
}

func TestCode_UnmarshalJSON_IntegralNumberForms(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"plain", `1000`},
		{"trailing fraction zero", `1000.0`},
		{"exponent", `1e3`},
		{"string", `"01000"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Code
			require.NoError(t, json.Unmarshal([]byte(tt.in), &c))
			assert.Equal(t, Code("1000"), c)
		})
	}
}

func TestCode_UnmarshalJSON_RejectsNonIntegralNumbers(t *testing.T) {
	for _, in := range []string{`12.5`, `-1`} {
		var c Code
		assert.Error(t, json.Unmarshal([]byte(in), &c), in)
	}
}

func TestCode_UnmarshalYAML(t *testing.T) {
	var payload struct {
		A Code `yaml:"a"`
		B Code `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 40\nb: \"040\"\n"), &payload))

	assert.Equal(t, Code("40"), payload.A)
	assert.Equal(t, Code("40"), payload.B)

	require.NoError(t, yaml.Unmarshal([]byte("a: 40.0\n"), &payload))
	assert.Equal(t, Code("40"), payload.A)

	assert.Error(t, yaml.Unmarshal([]byte("a: 4.5\n"), &payload))
}

func TestMoney_JSONUsesDecimalEncoding(t *testing.T) {
	var payload struct {
		A Money `json:"a"`
		B Money `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1250000.5, "b": "1250000.5"}`), &payload))
	assert.True(t, payload.A.Equal(payload.B))
	assert.True(t, payload.A.Equal(MustMoney("1250000.5")))

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": "1250000.5", "b": "1250000.5"}`, string(raw))

	assert.Error(t, json.Unmarshal([]byte(`{"a": "12a"}`), &payload))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1,500,000", FormatMoney(MustMoney("1500000")))
	assert.Equal(t, "999", FormatMoney(MustMoney("999")))
	assert.Equal(t, "-12,345.5", FormatMoney(MustMoney("-12345.5")))
	assert.Equal(t, "0", FormatMoney(Zero()))
}

func TestMinAndSumMoney(t *testing.T) {
	assert.True(t, MinMoney(NewMoney(5), NewMoney(3)).Equal(NewMoney(3)))
	assert.True(t, SumMoney(NewMoney(1), NewMoney(2), NewMoney(3)).Equal(NewMoney(6)))
}
