package usecase

import (
	"strings"
	"unicode"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fskerman/tagkeeper/pkg/domain/model"
	"github.com/fskerman/tagkeeper/pkg/domain/types"
)

// ParseToolchainPin extracts the version from version-file content of the
// form "<identifier>:<version>". The content is split on the first colon
// and all whitespace (including embedded newlines) is removed from the
// version part. Content without a colon is a configuration error.
func ParseToolchainPin(content []byte) (*model.ToolchainPin, error) {
	raw := string(content)

	identifier, rest, found := strings.Cut(raw, ":")
	if !found {
		return nil, goerr.New("version file has no colon separator",
			goerr.T(types.ErrTagConfig),
			goerr.V("content", strings.TrimSpace(raw)),
		)
	}

	version := stripSpace(rest)
	if version == "" {
		return nil, goerr.New("version file has an empty version part",
			goerr.T(types.ErrTagConfig),
			goerr.V("content", strings.TrimSpace(raw)),
		)
	}

	return &model.ToolchainPin{
		Identifier: strings.TrimSpace(identifier),
		Version:    version,
	}, nil
}

// stripSpace removes every whitespace rune from s
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
