package post

// CreatePostDTO is the request body for creating a post.
type CreatePostDTO struct {
	Title         string   `json:"title"    binding:"required"`
	Content       string   `json:"content"  binding:"required"`
	CategoryID    string   `json:"category" binding:"required"`
	Excerpt       string   `json:"excerpt"`
	FeaturedImage string   `json:"featuredImage"`
	Tags          []string `json:"tags"`
	IsPublished   *bool    `json:"isPublished"`
}

// UpdatePostDTO is the request body for updating a post. All fields are
// optional; omitted fields are left unchanged.
type UpdatePostDTO struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	CategoryID    *string  `json:"category"`
	Excerpt       *string  `json:"excerpt"`
	FeaturedImage *string  `json:"featuredImage"`
	Tags          []string `json:"tags"`
	IsPublished   *bool    `json:"isPublished"`
}

// ListQuery holds query params for listing posts.
type ListQuery struct {
	Category  *string `form:"category"`
	Published *bool   `form:"published"`
	Search    *string `form:"search"`
}
