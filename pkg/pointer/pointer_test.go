// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssign(t *testing.T) {
	name := "Sauvage"

	assert.False(t, Assign(&name, nil))
	assert.Equal(t, "Sauvage", name)

	assert.True(t, Assign(&name, To("Eros")))
	assert.Equal(t, "Eros", name)
}

func TestMap(t *testing.T) {
	assert.Nil(t, Map[string, string](nil, strings.TrimSpace))
	assert.Equal(t, "Oud", *Map(To("  Oud "), strings.TrimSpace))
}
