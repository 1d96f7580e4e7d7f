package models

type RegisterRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     UserRole `json:"role,omitempty" validate:"omitempty,oneof=writer editor admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreatePostRequest struct {
	Title   string     `json:"title" validate:"required,min=1,max=255"`
	Content string     `json:"content"`
	Excerpt string     `json:"excerpt" validate:"max=1000"`
	Status  PostStatus `json:"status" validate:"omitempty,oneof=draft published scheduled archived"`
	Tags    []string   `json:"tags" validate:"max=20,dive,min=1,max=100"`
}

// UpdatePostRequest is a partial update: nil fields are left untouched and a
// nil Tags slice keeps the current tags while an empty one clears them.
type UpdatePostRequest struct {
	Title   *string     `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string     `json:"content"`
	Excerpt *string     `json:"excerpt" validate:"omitempty,max=1000"`
	Status  *PostStatus `json:"status" validate:"omitempty,oneof=draft published scheduled archived"`
	Tags    []string    `json:"tags" validate:"max=20,dive,min=1,max=100"`
}

type RestorePostResponse struct {
	Post               *Post        `json:"post"`
	RestorationVersion *PostVersion `json:"restoration_version"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

type CommentListParams struct {
	Status CommentStatus `form:"status"`
}

type AssistRequest struct {
	Content string `json:"content" validate:"required"`
}

type PostListParams struct {
	Status    string `form:"status"`
	AuthorID  uint   `form:"author_id"`
	Tag       string `form:"tag"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
}
