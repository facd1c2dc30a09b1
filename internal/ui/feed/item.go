package feed

import (
	"fmt"

	"github.com/wildprogrammer1000/codeconnect/internal/model"
	"github.com/wildprogrammer1000/codeconnect/internal/theme"
)

// ProjectItem wraps a model.Project so it can be used in a bubbles/list.
type ProjectItem struct {
	Project model.Project
}

// FilterValue returns the string used for fuzzy filtering.
func (i ProjectItem) FilterValue() string { return i.Project.Title }

// Title returns the project title for the list.
func (i ProjectItem) Title() string { return i.Project.Title }

// Description returns a short summary line for the list.
func (i ProjectItem) Description() string {
	heart := "♡"
	if i.Project.Liked {
		heart = theme.LikedStyle.Render("♥")
	}
	return fmt.Sprintf(
		"%s %d · 💬 %d · by %s · %s",
		heart,
		i.Project.LikeCount,
		i.Project.CommentCount,
		i.Project.Nickname,
		i.Project.URL,
	)
}
