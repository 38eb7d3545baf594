package schema

// ContentNewsArticleTable represents the 'content.newsarticle' table
type ContentNewsArticleTable struct {
	Table        string
	ID           string
	Title        string
	Slug         string
	Summary      string
	Body         string
	HeroImageURL string
	IsPinned     string
	PublishedAt  string
	CreatedAt    string
	UpdatedAt    string
}

// ContentNewsArticle is the schema definition for content.newsarticle
var ContentNewsArticle = ContentNewsArticleTable{
	Table:        "content.newsarticle",
	ID:           "id",
	Title:        "title",
	Slug:         "slug",
	Summary:      "summary",
	Body:         "body",
	HeroImageURL: "heroimageurl",
	IsPinned:     "ispinned",
	PublishedAt:  "publishedat",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t ContentNewsArticleTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Summary, t.Body, t.HeroImageURL,
		t.IsPinned, t.PublishedAt, t.CreatedAt, t.UpdatedAt,
	}
}
