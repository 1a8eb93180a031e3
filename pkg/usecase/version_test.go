package usecase_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/fskerman/tagkeeper/pkg/domain/types"
	"github.com/fskerman/tagkeeper/pkg/usecase"
)

func TestParseToolchainPin(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantIdentifier string
		wantVersion    string
		wantErr        bool
	}{
		{
			name:           "Plain pin",
			content:        "leanprover/lean4:v4.10.0",
			wantIdentifier: "leanprover/lean4",
			wantVersion:    "v4.10.0",
		},
		{
			name:           "Trailing newline",
			content:        "leanprover/lean4:v4.10.0\n",
			wantIdentifier: "leanprover/lean4",
			wantVersion:    "v4.10.0",
		},
		{
			name:           "Whitespace around the colon",
			content:        "id: X.Y.Z",
			wantIdentifier: "id",
			wantVersion:    "X.Y.Z",
		},
		{
			name:           "Embedded whitespace in version part",
			content:        "id:\tv1.2.3 \n",
			wantIdentifier: "id",
			wantVersion:    "v1.2.3",
		},
		{
			name:           "Only first colon splits",
			content:        "host:port:v9",
			wantIdentifier: "host",
			wantVersion:    "port:v9",
		},
		{
			name:    "No colon",
			content: "v4.10.0",
			wantErr: true,
		},
		{
			name:    "Empty content",
			content: "",
			wantErr: true,
		},
		{
			name:    "Colon with only whitespace after",
			content: "id: \n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pin, err := usecase.ParseToolchainPin([]byte(tt.content))
			if tt.wantErr {
				gt.Error(t, err)
				gt.Value(t, goerr.HasTag(err, types.ErrTagConfig)).Equal(true)
				return
			}

			gt.NoError(t, err)
			gt.Value(t, pin.Identifier).Equal(tt.wantIdentifier)
			gt.Value(t, pin.Version).Equal(tt.wantVersion)
		})
	}
}
