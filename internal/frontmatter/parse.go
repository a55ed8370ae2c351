// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frontmatter

import (
	"bytes"
	"fmt"

	yamlfm "github.com/adrg/frontmatter"

	"github.com/pdiddy/wp-jekyll/pkg/types"
)

// Parse reads the YAML header of a migrated post and returns it with the
// remaining body. A title or excerpt containing unescaped double quotes
// makes the header invalid YAML and fails here.
func Parse(doc []byte) (types.Frontmatter, []byte, error) {
	var fm types.Frontmatter
	body, err := yamlfm.MustParse(bytes.NewReader(doc), &fm)
	if err != nil {
		return types.Frontmatter{}, nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return fm, body, nil
}
