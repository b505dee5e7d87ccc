// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// DetailLevel selects which regions of a paper are assembled into the
// Markdown output.
type DetailLevel string

const (
	// LevelAbstract is title, authors and abstract.
	LevelAbstract DetailLevel = "abstract"
	// LevelBody adds the body sections to LevelAbstract.
	LevelBody DetailLevel = "body"
	// LevelAppendix is the title followed by the appendix sections only.
	LevelAppendix DetailLevel = "appendix"
	// LevelAll is the body followed by references and appendix.
	LevelAll DetailLevel = "all"
)

// ErrInvalidLevel is returned for a detail level outside the four variants.
var ErrInvalidLevel = errors.New("invalid detail level")

// Levels lists the accepted detail levels in declaration order.
var Levels = []DetailLevel{LevelAbstract, LevelBody, LevelAppendix, LevelAll}

// ParseDetailLevel maps a user-supplied selector onto a DetailLevel. The
// empty string selects LevelBody; matching is case-insensitive.
func ParseDetailLevel(s string) (DetailLevel, error) {
	switch DetailLevel(strings.ToLower(strings.TrimSpace(s))) {
	case "", LevelBody:
		return LevelBody, nil
	case LevelAbstract:
		return LevelAbstract, nil
	case LevelAppendix:
		return LevelAppendix, nil
	case LevelAll:
		return LevelAll, nil
	}
	return "", fmt.Errorf("%w: %q (want one of abstract, body, appendix, all)", ErrInvalidLevel, s)
}

func (l DetailLevel) String() string { return string(l) }
