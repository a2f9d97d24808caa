// Package seed populates a development database with plausible fake data.
package seed

import (
	"fmt"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users           int
	Groups          int
	PostsPerUser    int
	CommentsPerPost int
	Password        string
}

// DefaultOptions is a small but browsable data set.
func DefaultOptions() Options {
	return Options{
		Users:           8,
		Groups:          3,
		PostsPerUser:    5,
		CommentsPerPost: 2,
		Password:        "Inkwell-dev-123!",
	}
}

// Run fills the database with fake users, groups, posts, comments and follow
// edges. Every generated account shares the same development password.
func Run(db *gorm.DB, opts Options) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	groups := make([]models.Group, 0, opts.Groups)
	for i := 0; i < opts.Groups; i++ {
		title := gofakeit.BookTitle()
		g := models.Group{
			Title:       title,
			Slug:        slugify(title, i),
			Description: gofakeit.Sentence(12),
		}
		if err := db.Create(&g).Error; err != nil {
			return fmt.Errorf("seed group: %w", err)
		}
		groups = append(groups, g)
	}

	users := make([]models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u := models.User{
			Username: fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i),
			Email:    gofakeit.Email(),
			Password: string(hash),
		}
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, u)
	}

	for _, u := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			p := models.Post{
				Text:     gofakeit.Paragraph(1, 3, 12, " "),
				AuthorID: u.ID,
			}
			// Roughly half the posts land in a group.
			if len(groups) > 0 && gofakeit.Bool() {
				gid := groups[gofakeit.Number(0, len(groups)-1)].ID
				p.GroupID = &gid
			}
			if err := db.Create(&p).Error; err != nil {
				return fmt.Errorf("seed post: %w", err)
			}

			for j := 0; j < opts.CommentsPerPost; j++ {
				commenter := users[gofakeit.Number(0, len(users)-1)]
				cmt := models.Comment{
					Text:     gofakeit.Sentence(8),
					PostID:   p.ID,
					AuthorID: commenter.ID,
				}
				if err := db.Create(&cmt).Error; err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}
		}
	}

	// Each user follows a couple of others.
	for i, u := range users {
		for _, offset := range []int{1, 3} {
			author := users[(i+offset)%len(users)]
			if author.ID == u.ID {
				continue
			}
			edge := models.Follow{FollowerID: u.ID, AuthorID: author.ID}
			if err := db.Where("follower_id = ? AND author_id = ?", u.ID, author.ID).
				FirstOrCreate(&edge).Error; err != nil {
				return fmt.Errorf("seed follow: %w", err)
			}
		}
	}

	return nil
}

func slugify(title string, n int) string {
	slug := strings.ToLower(title)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	slug = fmt.Sprintf("%s-%d", slug, n)
	// Generated titles can produce a slug the platform would reject.
	if err := validation.ValidateGroupSlug(slug); err != nil {
		slug = fmt.Sprintf("group-%d", n)
	}
	return slug
}
