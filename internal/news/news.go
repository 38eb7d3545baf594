// Copyright (c) 2026 Dorfportal Wendessen. All rights reserved.
// Author: webmaster@wendessen.de

/*
Package news manages the portal's own news articles ("Dorf-Nachrichten").

Articles are written by editors, published explicitly, and optionally pinned
to the top of the public page. Pinning is capped so the landing page stays
scannable. Club news is out of scope here: clubs maintain their own channels,
which is also why the matching permission namespace is hard-excluded.
*/
package news

import "time"

// Article is one portal news article.
type Article struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Summary      string     `json:"summary"`
	Body         string     `json:"body"`
	HeroImageURL *string    `json:"hero_image_url,omitempty"`
	IsPinned     bool       `json:"is_pinned"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Published reports whether the article is publicly visible.
func (article *Article) Published() bool {
	return article.PublishedAt != nil && !article.PublishedAt.After(time.Now())
}

// # Field Identifiers

const (
	FieldTitle   = "title"
	FieldSlug    = "slug"
	FieldSummary = "summary"
	FieldBody    = "body"
)
