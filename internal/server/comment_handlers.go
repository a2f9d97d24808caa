package server

import (
	"errors"
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// commentForm is the submitted body of the add-comment flow.
type commentForm struct {
	Text string `form:"text" json:"text"`
}

// AddComment handles POST /posts/:id/comment/. The browser flow always lands
// back on the post's detail page: a valid comment is persisted first, an
// invalid one is simply dropped. Only a missing post breaks the redirect.
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	var form commentForm
	// An unparseable body is treated like invalid input: no comment, same
	// redirect.
	_ = c.BodyParser(&form)

	if _, err := s.commentService.AddComment(ctx, service.AddCommentInput{
		ActorID: userID,
		PostID:  id,
		Text:    form.Text,
	}); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "VALIDATION_ERROR" {
			return c.Redirect(fmt.Sprintf("/posts/%d/", id), fiber.StatusSeeOther)
		}
		return respondError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/posts/%d/", id), fiber.StatusSeeOther)
}
