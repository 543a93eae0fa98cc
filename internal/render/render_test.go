package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-codegen/internal/render"
)

func TestParseLang(t *testing.T) {
	tests := []struct {
		name    string
		want    render.Lang
		wantErr bool
	}{
		{name: "cpp", want: render.CPP},
		{name: "c++", want: render.CPP},
		{name: "rust", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := render.ParseLang(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "not supported")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLangString(t *testing.T) {
	assert.Equal(t, "cpp", render.CPP.String())
	assert.Equal(t, "unknown", render.Unknown.String())
}
