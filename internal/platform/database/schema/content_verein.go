package schema

// ContentVereinTable represents the 'content.verein' table
type ContentVereinTable struct {
	Table        string
	ID           string
	Name         string
	Slug         string
	Description  string
	ContactName  string
	ContactEmail string
	Website      string
	CreatedAt    string
	UpdatedAt    string
}

// ContentVerein is the schema definition for content.verein
var ContentVerein = ContentVereinTable{
	Table:        "content.verein",
	ID:           "id",
	Name:         "name",
	Slug:         "slug",
	Description:  "description",
	ContactName:  "contactname",
	ContactEmail: "contactemail",
	Website:      "website",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t ContentVereinTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Slug, t.Description, t.ContactName,
		t.ContactEmail, t.Website, t.CreatedAt, t.UpdatedAt,
	}
}
