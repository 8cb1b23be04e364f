package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog/internal/models"
)

func TestDate_JSON(t *testing.T) {
	d := models.NewDate(2010, time.July, 16)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2010-07-16"`, string(out))

	var parsed models.Date
	require.NoError(t, json.Unmarshal([]byte(`"1997-12-19"`), &parsed))
	assert.Equal(t, "1997-12-19", parsed.String())

	assert.Error(t, json.Unmarshal([]byte(`"19-12-1997"`), &parsed))
	assert.Error(t, json.Unmarshal([]byte(`1997`), &parsed))
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{name: "time value", value: time.Date(2014, time.November, 7, 0, 0, 0, 0, time.UTC), want: "2014-11-07"},
		{name: "plain string", value: "2016-12-21", want: "2016-12-21"},
		{name: "timestamp text", value: "2016-01-15T00:00:00Z", want: "2016-01-15"},
		{name: "bytes", value: []byte("2001-12-07"), want: "2001-12-07"},
		{name: "null", value: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d models.Date
			require.NoError(t, d.Scan(tt.value))
			assert.Equal(t, tt.want, d.String())
		})
	}

	var d models.Date
	assert.Error(t, d.Scan(42))
}

func TestDate_Value(t *testing.T) {
	v, err := models.NewDate(2019, time.April, 26).Value()
	require.NoError(t, err)
	assert.Equal(t, "2019-04-26", v)

	v, err = models.Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
