package server

import (
	"fmt"
	"io"
	"strconv"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PostDetailPage is the result of a single post view: the post, all of its
// comments in creation order, and the author's total post count. CommentForm
// is present (and empty) for authenticated viewers.
type PostDetailPage struct {
	Post            *models.Post     `json:"post"`
	Comments        []models.Comment `json:"comments"`
	AuthorPostCount int64            `json:"author_post_count"`
	CommentForm     *CommentForm     `json:"comment_form,omitempty"`
}

// CommentForm is the empty comment input offered to authenticated viewers.
type CommentForm struct {
	Text string `json:"text"`
}

// PostFormPage is the result of the create/edit form views. Groups holds the
// selectable group choices.
type PostFormPage struct {
	Text    string         `json:"text"`
	GroupID *uint          `json:"group_id,omitempty"`
	Groups  []models.Group `json:"groups"`
	IsEdit  bool           `json:"is_edit"`
	PostID  uint           `json:"post_id,omitempty"`
}

const groupChoiceLimit = 200

func (s *Server) groupChoices(c *fiber.Ctx) ([]models.Group, error) {
	return s.groupRepo.List(c.Context(), groupChoiceLimit, 0)
}

// postForm is the submitted body of the create/edit flows. The image arrives
// as a multipart file, not a body field.
type postForm struct {
	Text  string `form:"text" json:"text"`
	Group string `form:"group" json:"group"`
}

// groupID parses the optional group selection. An empty value means no group.
func (f *postForm) groupID() (*uint, error) {
	if f.Group == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(f.Group, 10, 32)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("invalid group reference %q", f.Group)
	}
	gid := uint(id)
	return &gid, nil
}

// PostDetail handles GET /posts/:id/.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	ctx := c.Context()
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	comments, err := s.commentRepo.ListByPostID(ctx, post.ID)
	if err != nil {
		return respondError(c, err)
	}

	authorPostCount, err := s.postRepo.CountByAuthorID(ctx, post.AuthorID)
	if err != nil {
		return respondError(c, err)
	}

	page := PostDetailPage{
		Post:            post,
		Comments:        comments,
		AuthorPostCount: authorPostCount,
	}
	if currentUserID(c) != 0 {
		page.CommentForm = &CommentForm{}
	}

	return c.JSON(page)
}

// PostCreateForm handles GET /create/.
func (s *Server) PostCreateForm(c *fiber.Ctx) error {
	groups, err := s.groupChoices(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(PostFormPage{Groups: groups})
}

// PostCreate handles POST /create/. On success the actor is redirected to
// their profile; on validation failure the form is redisplayed with
// field-level errors and nothing is persisted.
func (s *Server) PostCreate(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	groupID, err := form.groupID()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(map[string]string{"group": "Selected group does not exist"}))
	}

	image, err := readImageUpload(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(map[string]string{"image": "Upload a valid image"}))
	}

	if _, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID: userID,
		Text:     form.Text,
		GroupID:  groupID,
		Image:    image,
	}); err != nil {
		return respondError(c, err)
	}

	actor, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Redirect("/profile/"+actor.Username+"/", fiber.StatusSeeOther)
}

// PostEditForm handles GET /posts/:id/edit/.
func (s *Server) PostEditForm(c *fiber.Ctx) error {
	ctx := c.Context()
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	groups, err := s.groupChoices(c)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(PostFormPage{
		Text:    post.Text,
		GroupID: post.GroupID,
		Groups:  groups,
		IsEdit:  true,
		PostID:  post.ID,
	})
}

// PostEdit handles POST /posts/:id/edit/. Only the author may edit; the
// image is not part of this flow. On success the actor is redirected to the
// post's detail page.
func (s *Server) PostEdit(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	groupID, err := form.groupID()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(map[string]string{"group": "Selected group does not exist"}))
	}

	if _, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		ActorID: userID,
		PostID:  id,
		Text:    form.Text,
		GroupID: groupID,
	}); err != nil {
		return respondError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/posts/%d/", id), fiber.StatusSeeOther)
}

// readImageUpload reads the optional multipart image attachment. A missing
// file is not an error; an unreadable one is.
func readImageUpload(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// fasthttp reports both "no such file" and "not multipart" here;
		// either way there is no attachment to read.
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}
