package cli

import (
	"context"
	"fmt"
	"strconv"
)

// list shows one page of posts, newest first. Optional args: [limit [offset]].
func (a *App) list(ctx context.Context, args []string) {

	var limit, offset uint32
	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Println("Invalid limit:", args[0])
			return
		}
		limit = uint32(v)
	}
	if len(args) > 1 {
		v, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			fmt.Println("Invalid offset:", args[1])
			return
		}
		offset = uint32(v)
	}

	page, err := a.client.ListPosts(ctx, limit, offset)
	if err != nil {
		a.reportError(err)
		return
	}

	for _, p := range page.Posts {
		fmt.Printf("#%d %s (author %d, %s)\n", p.ID, p.Title, p.AuthorID, p.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("Showing %d of %d posts (offset %d)\n", len(page.Posts), page.Total, page.Offset)
}
