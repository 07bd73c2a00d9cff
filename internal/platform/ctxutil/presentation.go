// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil

import (
	"context"

	"github.com/taibuivan/perfumery/internal/platform/ctxkey"
)

// Presentation is how a request expects failures to be delivered.
type Presentation int

const (
	// PresentationAPI answers with the JSON envelope.
	PresentationAPI Presentation = iota

	// PresentationBrowser answers with HTML pages and redirects.
	PresentationBrowser
)

// String implements fmt.Stringer for log attributes.
func (p Presentation) String() string {
	if p == PresentationBrowser {
		return "browser"
	}
	return "api"
}

// WithPresentation stores the resolved presentation on the context.
func WithPresentation(ctx context.Context, presentation Presentation) context.Context {
	return context.WithValue(ctx, ctxkey.KeyPresentation, presentation)
}

// GetPresentation returns the resolved presentation, defaulting to [PresentationAPI].
func GetPresentation(ctx context.Context) Presentation {
	presentation, ok := ctx.Value(ctxkey.KeyPresentation).(Presentation)
	if !ok {
		return PresentationAPI
	}
	return presentation
}
