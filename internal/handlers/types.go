package handlers

// ShortenRequest is the request body for allocating a short link.
type ShortenRequest struct {
	Body struct {
		Original   string `doc:"The URL to shorten"          example:"https://example.com/very/long/path" json:"original"             required:"false"`
		CustomSlug string `doc:"Optional caller-chosen slug" example:"launch"                             json:"customSlug,omitempty" required:"false"`
	}
}

// ShortenResponse is the response for a successfully allocated short link.
type ShortenResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		Slug     string `doc:"The allocated slug" example:"1c"                         json:"slug"`
		ShortURL string `doc:"The full short URL" example:"http://localhost:8888/1c" json:"shortUrl"`
	}
}

// RedirectRequest is the request for resolving a slug.
type RedirectRequest struct {
	Slug string `doc:"The slug to resolve" example:"1c" path:"slug"`
}

// RedirectResponse is the temporary redirect to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location     string `header:"Location"`
		CacheControl string `header:"Cache-Control"`
	}
}

// UpdateSlugRequest is the request body for renaming an owned record.
type UpdateSlugRequest struct {
	Body struct {
		URLID   string `doc:"Id of the record to rename" example:"9b2f6f0e-8d7c-4a8e-9f3e-0d2a4c1b5e6f" json:"urlId"   required:"false"`
		NewSlug string `doc:"The slug to move it to"     example:"spring-sale"                          json:"newSlug" required:"false"`
	}
}

// UpdateSlugResponse confirms a rename.
type UpdateSlugResponse struct {
	Body struct {
		Success bool   `json:"success"`
		NewSlug string `example:"spring-sale" json:"newSlug"`
	}
}
