package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    Price
		wantErr bool
	}{
		{in: "30", want: 3000},
		{in: "30.5", want: 3050},
		{in: "30.05", want: 3005},
		{in: ".5", want: 50},
		{in: "0", want: 0},
		{in: "-1.25", want: -125},
		{in: " 7.10 ", want: 710},
		{in: "1.234", wantErr: true},
		{in: "", wantErr: true},
		{in: "ten", wantErr: true},
		{in: "1.x", wantErr: true},
		{in: "5.", want: 500},
		{in: ".", wantErr: true},
		{in: "-", wantErr: true},
		{in: "1.-5", wantErr: true},
		{in: "1.+5", wantErr: true},
		{in: "--5", wantErr: true},
		{in: "+5", wantErr: true},
		{in: "1 000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPrice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrice_String(t *testing.T) {
	assert.Equal(t, "30.00", Price(3000).String())
	assert.Equal(t, "0.05", Price(5).String())
	assert.Equal(t, "-1.25", Price(-125).String())
}

func TestPrice_JSON(t *testing.T) {
	var body struct {
		Price Price `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"price": 30.00}`), &body))
	assert.Equal(t, Price(3000), body.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"price": "12.5"}`), &body))
	assert.Equal(t, Price(1250), body.Price)

	assert.Error(t, json.Unmarshal([]byte(`{"price": 1.005}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"price": true}`), &body))

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"12.50"}`, string(out))
}

func TestPrice_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want Price
	}{
		{name: "postgres numeric", src: []byte("5.50"), want: 550},
		{name: "text", src: "12.00", want: 1200},
		{name: "sqlite real", src: 3.2, want: 320},
		{name: "sqlite integer", src: int64(4), want: 400},
		{name: "null", src: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Price
			require.NoError(t, p.Scan(tt.src))
			assert.Equal(t, tt.want, p)
		})
	}

	var p Price
	assert.ErrorIs(t, p.Scan(true), ErrInvalidPrice)
}

func TestPrice_Value(t *testing.T) {
	v, err := Price(999).Value()
	require.NoError(t, err)
	assert.Equal(t, "9.99", v)
}
