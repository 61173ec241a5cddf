package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dkurbatov/goblog/internal/client/client"
	"github.com/dkurbatov/goblog/internal/common"
)

// reportError prints the failure and, when the backend rejected the session,
// drops the persisted token so the next run starts logged out.
func (a *App) reportError(err error) {
	fmt.Println(err.Error())
	if errors.Is(err, common.ErrUnauthenticated) {
		a.userName = ""
		a.saveSession()
	}
}

func parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		fmt.Println("Usage: " + usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Println("Invalid post id:", args[0])
		return 0, false
	}
	return id, true
}

func printPost(p *client.Post) {
	fmt.Printf("#%d %s (author %d, updated %s)\n%s\n",
		p.ID, p.Title, p.AuthorID, p.UpdatedAt.Format("2006-01-02 15:04"), p.Content)
}

func (a *App) createPost(ctx context.Context) {

	title, err := GetSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	content, err := GetMultiline(a.reader, "Enter content", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	post, err := a.client.CreatePost(ctx, title, content)
	if err != nil {
		a.reportError(err)
		return
	}

	fmt.Printf("Created post #%d\n", post.ID)
}

func (a *App) getPost(ctx context.Context, args []string) {

	id, ok := parseID(args, "get <id>")
	if !ok {
		return
	}

	post, err := a.client.GetPost(ctx, id)
	if err != nil {
		a.reportError(err)
		return
	}

	printPost(post)
}

func (a *App) updatePost(ctx context.Context, args []string) {

	id, ok := parseID(args, "update <id>")
	if !ok {
		return
	}

	title, err := GetSimpleText(a.reader, "Enter new title", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	content, err := GetMultiline(a.reader, "Enter new content", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	post, err := a.client.UpdatePost(ctx, id, title, content)
	if err != nil {
		a.reportError(err)
		return
	}

	fmt.Printf("Updated post #%d\n", post.ID)
}

func (a *App) deletePost(ctx context.Context, args []string) {

	id, ok := parseID(args, "delete <id>")
	if !ok {
		return
	}

	if err := a.client.DeletePost(ctx, id); err != nil {
		a.reportError(err)
		return
	}

	fmt.Printf("Deleted post #%d\n", id)
}
